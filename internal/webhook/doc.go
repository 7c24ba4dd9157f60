// Package webhook keeps a deployed checkout in sync with its remote.
//
// A push notification from the code host is authenticated with
// VerifySignature, then GitSyncer pulls the repository and marks the service
// executable as runnable again. Commands run through a CommandRunner so tests
// never touch git.
package webhook
