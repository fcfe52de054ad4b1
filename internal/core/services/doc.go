// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The response pipeline lives here: Classifier, Matcher, Rotator,
// GeneratorService and Resolver, wrapped per conversation by Session.
package services
