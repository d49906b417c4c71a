package auth

// Bridges for the external auth_test package. identity_test.go lives in
// auth_test to avoid an import cycle with internal/mocks, which imports
// this package.
var NewHMACJWTServiceForTest = newHMACJWTService

const TestSecret = testSecret
