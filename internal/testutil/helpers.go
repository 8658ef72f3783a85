package testutil

// Message of the errors returned by mocked repositories.
const DatabaseError = "database error occurred"
