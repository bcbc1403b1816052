// Package e2ee provides the building blocks for exchanging RSA-encrypted
// messages between two endpoints.
//
// The owner of a key pair publishes its public key as a text document; a
// counterparty imports that text and encrypts payloads only the owner can
// decrypt. Key exchange protocols, transport and hybrid encryption are left to
// the application. The cipher itself lives in package asym, the key document
// format in keydoc, and key fingerprints in identity.
package e2ee
