package e2ee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/e2ee/e2ee/asym"
	"github.com/TheusHen/e2ee/e2ee/directory"
	"github.com/TheusHen/e2ee/e2ee/directory/memory"
)

func TestPartyExchange(t *testing.T) {
	opts := asym.Options{KeySize: 2048}
	alice, err := NewParty(opts)
	require.NoError(t, err)
	bob, err := NewParty(opts)
	require.NoError(t, err)

	aliceDoc, err := alice.PublicKeyText()
	require.NoError(t, err)
	bobDoc, err := bob.PublicKeyText()
	require.NoError(t, err)

	toAlice, err := bob.Peer(aliceDoc)
	require.NoError(t, err)
	assert.Equal(t, asym.PublicOnly, toAlice.State())
	toBob, err := alice.Peer(bobDoc)
	require.NoError(t, err)

	ct, err := bob.Seal(toAlice, "hi alice")
	require.NoError(t, err)
	msg, err := alice.Open(ct)
	require.NoError(t, err)
	assert.Equal(t, "hi alice", msg)

	ct, err = alice.Seal(toBob, "hi bob")
	require.NoError(t, err)
	msg, err = bob.Open(ct)
	require.NoError(t, err)
	assert.Equal(t, "hi bob", msg)

	// Only the addressee can open a message.
	_, err = bob.Open(ct[:0])
	require.ErrorIs(t, err, asym.ErrPadding)
	ct, err = bob.Seal(toAlice, "private")
	require.NoError(t, err)
	_, err = bob.Open(ct)
	require.ErrorIs(t, err, asym.ErrPadding)

	fp, err := alice.Fingerprint()
	require.NoError(t, err)
	peerFP, err := toAlice.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, peerFP)
}

func TestPartyRefusesPrivateDocument(t *testing.T) {
	alice, err := NewParty(asym.Options{KeySize: 2048})
	require.NoError(t, err)
	doc, err := alice.Cipher().ExportPrivate()
	require.NoError(t, err)

	_, err = alice.Peer(doc)
	require.ErrorIs(t, err, ErrPrivateKeyOffered)

	_, err = alice.Peer("garbage")
	require.ErrorIs(t, err, asym.ErrSerialization)
}

func TestNewPartyInvalidSize(t *testing.T) {
	_, err := NewParty(asym.Options{KeySize: 100})
	require.ErrorIs(t, err, asym.ErrKeyGen)
}

func TestPartyDirectory(t *testing.T) {
	opts := asym.Options{KeySize: 2048}
	alice, err := NewParty(opts)
	require.NoError(t, err)
	bob, err := NewParty(opts)
	require.NoError(t, err)

	dir := memory.New()
	rec, err := alice.Publish(dir, map[string]string{"owner": "alice"})
	require.NoError(t, err)
	fp, err := alice.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, rec.Fingerprint)

	toAlice, err := bob.PeerByFingerprint(dir, fp)
	require.NoError(t, err)
	ct, err := bob.Seal(toAlice, "found you")
	require.NoError(t, err)
	msg, err := alice.Open(ct)
	require.NoError(t, err)
	assert.Equal(t, "found you", msg)

	bobFP, err := bob.Fingerprint()
	require.NoError(t, err)
	_, err = alice.PeerByFingerprint(dir, bobFP)
	require.ErrorIs(t, err, directory.ErrNotFound)
}
