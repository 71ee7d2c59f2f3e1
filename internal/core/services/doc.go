// Package services implements the driving port interfaces.
// Services contain the client-side logic (call tracking, history
// aggregation, settings resolution) and call the backend through
// the driven BiasAPI port.
//
// Services are pure Go with no CGO or external dependencies.
package services
