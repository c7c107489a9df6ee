package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy (unversioned) transaction message.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into a legacy message paid for by
// payer. Accounts are deduplicated with their flags merged, then ordered as:
// payer, signers, writable accounts, read-only accounts, programs.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}
	for _, i := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: i.Program,
			isProgram: true,
		})
		accounts = append(accounts, i.Accounts...)
	}

	accounts = filterUnique(accounts)
	sort.Stable(SortableAccountMeta(accounts))

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, keyOrZero(account.PublicKey))

		if account.IsSigner {
			m.Header.NumSignatures++
			if !account.IsWritable {
				m.Header.NumReadonlySigned++
			}
		} else if !account.IsWritable {
			m.Header.NumReadOnly++
		}
	}

	for _, i := range instructions {
		c := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, keyOrZero(i.Program))),
			Data:         i.Data,
		}
		for _, a := range i.Accounts {
			c.Accounts = append(c.Accounts, byte(indexOf(m.Accounts, keyOrZero(a.PublicKey))))
		}
		m.Instructions = append(m.Instructions, c)
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// RequiredSigners returns the keys whose signatures the message expects, in
// signature order.
func (t *Transaction) RequiredSigners() []ed25519.PublicKey {
	return t.Message.Accounts[:t.Message.Header.NumSignatures]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, base58.Encode(s[:])))
	}
	sb.WriteString("Message:\n")
	sb.WriteString(fmt.Sprintf("  Header: %d signatures, %d readonly signed, %d readonly\n",
		t.Message.Header.NumSignatures,
		t.Message.Header.NumReadonlySigned,
		t.Message.Header.NumReadOnly,
	))
	sb.WriteString(fmt.Sprintf("  Recent Blockhash: %s\n", base58.Encode(t.Message.RecentBlockhash[:])))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		sb.WriteString(fmt.Sprintf("    %d: %s\n", i, base58.Encode(a)))
	}
	sb.WriteString("  Instructions:\n")
	for i, c := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("    %d: program=%d accounts=%v data=%v\n", i, c.ProgramIndex, c.Accounts, c.Data))
	}
	return sb.String()
}

func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))

	for _, account := range accounts {
		var seen bool
		for j := range filtered {
			if !bytes.Equal(account.PublicKey, filtered[j].PublicKey) {
				continue
			}

			// Promote permissions when the same account is referenced again
			filtered[j].IsSigner = filtered[j].IsSigner || account.IsSigner
			filtered[j].IsWritable = filtered[j].IsWritable || account.IsWritable
			filtered[j].isPayer = filtered[j].isPayer || account.isPayer
			seen = true
			break
		}

		if !seen {
			filtered = append(filtered, account)
		}
	}

	return filtered
}

// keyOrZero substitutes the all-zero key for an unset one so that it still
// occupies a slot in the message.
func keyOrZero(key ed25519.PublicKey) ed25519.PublicKey {
	if len(key) == 0 {
		return make([]byte, ed25519.PublicKeySize)
	}
	return key
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}
