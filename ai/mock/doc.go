// Package mock provides test doubles for the ai package interfaces.
//
// The mocks use function fields for behavior injection and record calls so
// tests can assert on prompts and call counts without reaching an external
// completion service.
package mock
