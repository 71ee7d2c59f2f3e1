// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BiasAPI: The bias-detection backend (REST over HTTP)
//   - ConfigStore: Application configuration
//   - FileSource: Opens local files for upload
//   - TextExtractor: Reads the text of local documents
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
