// Package service contains the application use cases of the learning
// scheduler. LearningService coordinates the word store, the session
// selector, the session runner and the progress aggregator, and is the only
// entry point used by the HTTP layer.
//
// Every operation is serialized by the service: the session runner is a
// single-session state machine and is never touched concurrently.
package service
