// Package api exposes the learning service over HTTP. Handlers decode and
// validate requests, call service.LearningService and translate its error
// kinds into status codes.
package api
