// Package mocks contains testify mocks for the interfaces of the contacts server.
package mocks

import "github.com/stretchr/testify/mock"

// testingT is what constructors need to register expectation checks.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}
