package e2ee

import (
	"errors"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/directory"
	"github.com/TheusHen/e2ee/e2ee/identity"
)

var ErrPrivateKeyOffered = errors.New("e2ee: peer document contains a private key")

// Party is a high-level helper for one side of an exchange: it owns a key
// pair and turns a counterparty's published key into a cipher for sending.
// It intentionally stays small; applications decide how documents travel.
type Party struct {
	own     *asym.Cipher
	opts    asym.Options
	padding asym.Padding
}

// NewParty generates a key pair for a new party. Messages use OAEP.
func NewParty(opts asym.Options) (*Party, error) {
	c, err := asym.Generate(opts)
	if err != nil {
		return nil, err
	}
	return &Party{own: c, opts: opts, padding: asym.OAEP}, nil
}

// Cipher returns the party's own full cipher.
func (p *Party) Cipher() *asym.Cipher { return p.own }

// PublicKeyText returns the document to hand to counterparties.
func (p *Party) PublicKeyText() (string, error) {
	return p.own.ExportPublic()
}

func (p *Party) Fingerprint() (identity.Fingerprint, error) {
	return p.own.Fingerprint()
}

// Peer imports a counterparty's public key document. A document carrying a
// private key is refused: it means the peer leaked its secret.
func (p *Party) Peer(doc string) (*asym.Cipher, error) {
	params, err := asym.ImportKey(doc)
	if err != nil {
		return nil, err
	}
	if params.IsPrivate() {
		return nil, ErrPrivateKeyOffered
	}
	return asym.New(params, p.opts)
}

// Publish announces the party's public key to a directory.
func (p *Party) Publish(r directory.Resolver, labels map[string]string) (directory.Record, error) {
	doc, err := p.PublicKeyText()
	if err != nil {
		return directory.Record{}, err
	}
	return directory.Publish(r, doc, labels)
}

// PeerByFingerprint resolves a counterparty's key from a directory.
func (p *Party) PeerByFingerprint(r directory.Resolver, fp identity.Fingerprint) (*asym.Cipher, error) {
	return directory.Resolve(r, fp, p.opts)
}

// Seal encrypts text for the holder of peer's private key.
func (p *Party) Seal(peer *asym.Cipher, text string) ([]byte, error) {
	return peer.EncryptText(text, p.padding)
}

// Open decrypts a message sealed for this party.
func (p *Party) Open(ciphertext []byte) (string, error) {
	return p.own.DecryptText(ciphertext, p.padding)
}
