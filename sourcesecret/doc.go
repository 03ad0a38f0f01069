// Package sourcesecret reads and writes secrets in the OS credential store.
//
// Secrets are addressed by "service/account" locators; a bare "account" uses
// the "system" service.
//
// Example:
//
//	service, account, err := sourcesecret.ParseLocator("smtp/password")
//	secret, err := sourcesecret.Keyring{}.Get(service, account)
package sourcesecret
