// Package asym implements an RSA public-key cipher for end-to-end message
// exchange.
//
// One party generates a key pair and exports the public half as a key
// document; the peer imports it and encrypts payloads that only the owner of
// the private key can read:
//
//	owner, _ := asym.Generate(asym.Options{})
//	doc, _ := owner.ExportPublic()
//
//	params, _ := asym.ImportKey(doc)
//	peer, _ := asym.New(params, asym.Options{})
//	ct, _ := peer.Encrypt(msg, asym.OAEP)
//
//	pt, _ := owner.Decrypt(ct, asym.OAEP)
//
// Payloads are encrypted directly with RSA-OAEP (SHA-1) or PKCS#1 v1.5, so
// they are limited to MaxPlaintext bytes. Composing a full secure channel is
// up to the caller.
package asym
