package staking

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

const StakeListHeaderSize = (1 + // is_initialized
	2 + // max_items
	2) // count

const StakedItemSize = (32 + // owner
	32 + // token_mint
	32 + // holder
	8) // stake_time

// MaxStakeListAccountSize is the allocation required for a list of MaxItems.
var MaxStakeListAccountSize = GetStakeListAccountSize(MaxItems)

// GetStakeListAccountSize is the size of a stake list with capacity for n items.
func GetStakeListAccountSize(n int) int {
	return StakeListHeaderSize + n*StakedItemSize
}

type StakeListHeader struct {
	IsInitialized bool
	MaxItems      uint16
	Count         uint16
}

type StakedItem struct {
	Owner     ed25519.PublicKey
	TokenMint ed25519.PublicKey
	Holder    ed25519.PublicKey
	StakeTime uint64
}

// StakedAt interprets StakeTime as the program's unix timestamp.
func (obj *StakedItem) StakedAt() time.Time {
	return time.Unix(int64(obj.StakeTime), 0).UTC()
}

func (obj *StakedItem) String() string {
	return fmt.Sprintf(
		"StakedItem{owner=%s,token_mint=%s,holder=%s,stake_time=%d}",
		encodeKey(obj.Owner),
		encodeKey(obj.TokenMint),
		encodeKey(obj.Holder),
		obj.StakeTime,
	)
}

func putStakedItem(dst []byte, item *StakedItem, offset *int) {
	binary.PutKey32(dst, item.Owner, offset)
	binary.PutKey32(dst, item.TokenMint, offset)
	binary.PutKey32(dst, item.Holder, offset)
	binary.PutUint64(dst, item.StakeTime, offset)
}

func getStakedItem(src []byte, dst *StakedItem, offset *int) error {
	start := *offset
	if err := binary.GetKey32(src, &dst.Owner, offset); err != nil {
		return err
	}
	if err := binary.GetKey32(src, &dst.TokenMint, offset); err != nil {
		*offset = start
		return err
	}
	if err := binary.GetKey32(src, &dst.Holder, offset); err != nil {
		*offset = start
		return err
	}
	if err := binary.GetUint64(src, &dst.StakeTime, offset); err != nil {
		*offset = start
		return err
	}
	return nil
}

// StakeListAccount is the stake list record. The program pre-allocates
// MaxItems slots, but only the first Header.Count are active.
type StakeListAccount struct {
	Header StakeListHeader

	items []StakedItem
}

// NewStakeListAccount returns an uninitialized, empty list with capacity for
// maxItems items.
func NewStakeListAccount(maxItems uint16) *StakeListAccount {
	return &StakeListAccount{
		Header: StakeListHeader{
			MaxItems: maxItems,
		},
		items: make([]StakedItem, 0, maxItems),
	}
}

// Append adds items after the active ones and bumps the count.
func (obj *StakeListAccount) Append(items ...StakedItem) error {
	if int(obj.Header.Count)+len(items) > int(obj.Header.MaxItems) {
		return errors.Wrapf(ErrCapacityExceeded, "cannot append %d items to %d of %d", len(items), obj.Header.Count, obj.Header.MaxItems)
	}

	obj.items = append(obj.items[:obj.Len()], items...)
	obj.Header.Count += uint16(len(items))
	return nil
}

// Items is the active view of the list: the first Header.Count entries.
func (obj *StakeListAccount) Items() []StakedItem {
	return obj.items[:obj.Len()]
}

func (obj *StakeListAccount) Len() int {
	if int(obj.Header.Count) > len(obj.items) {
		return len(obj.items)
	}
	return int(obj.Header.Count)
}

func (obj *StakeListAccount) At(i int) (*StakedItem, error) {
	if i < 0 || i >= obj.Len() {
		return nil, errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d)", i, obj.Len())
	}
	return &obj.items[i], nil
}

func (obj *StakeListAccount) Capacity() int {
	return int(obj.Header.MaxItems)
}

// Find returns the index of the first active item staked by owner for mint,
// or -1.
func (obj *StakeListAccount) Find(owner, mint ed25519.PublicKey) int {
	for i, item := range obj.Items() {
		if bytes.Equal(item.Owner, owner) && bytes.Equal(item.TokenMint, mint) {
			return i
		}
	}
	return -1
}

// FindByHolder returns the index of the first active item custodied by
// holder, or -1.
func (obj *StakeListAccount) FindByHolder(holder ed25519.PublicKey) int {
	for i, item := range obj.Items() {
		if bytes.Equal(item.Holder, holder) {
			return i
		}
	}
	return -1
}

func (obj *StakeListAccount) ItemsByOwner(owner ed25519.PublicKey) []StakedItem {
	var res []StakedItem
	for _, item := range obj.Items() {
		if bytes.Equal(item.Owner, owner) {
			res = append(res, item)
		}
	}
	return res
}

// Marshal writes the full pre-allocated record. Slots past the active items
// are zeroed.
func (obj *StakeListAccount) Marshal() []byte {
	data := make([]byte, GetStakeListAccountSize(obj.Capacity()))

	var offset int
	binary.PutBool(data, obj.Header.IsInitialized, &offset)
	binary.PutUint16(data, obj.Header.MaxItems, &offset)
	binary.PutUint16(data, obj.Header.Count, &offset)
	for i := range obj.Items() {
		putStakedItem(data, &obj.items[i], &offset)
	}

	return data
}

// Unmarshal decodes the header and exactly Header.Count items. The buffer may
// be shorter than the full capacity as long as the active items fit;
// otherwise ErrMalformedBuffer is returned.
func (obj *StakeListAccount) Unmarshal(data []byte) error {
	var offset int
	var flag uint8
	var header StakeListHeader

	if err := binary.GetUint8(data, &flag, &offset); err != nil {
		return errors.Wrap(err, "stake list header")
	}
	if err := binary.GetUint16(data, &header.MaxItems, &offset); err != nil {
		return errors.Wrap(err, "stake list header")
	}
	if err := binary.GetUint16(data, &header.Count, &offset); err != nil {
		return errors.Wrap(err, "stake list header")
	}

	isInitialized, err := decodeFlag("stake list", flag)
	if err != nil {
		return err
	}
	header.IsInitialized = isInitialized

	if header.Count > header.MaxItems {
		return errors.Wrapf(ErrCapacityExceeded, "count %d exceeds max items %d", header.Count, header.MaxItems)
	}
	if need := GetStakeListAccountSize(int(header.Count)); len(data) < need {
		return errors.Wrapf(ErrMalformedBuffer, "stake list: %d items need %d bytes, got %d", header.Count, need, len(data))
	}

	items := make([]StakedItem, header.Count)
	for i := range items {
		if err := getStakedItem(data, &items[i], &offset); err != nil {
			return errors.Wrapf(err, "stake list item %d", i)
		}
	}

	obj.Header = header
	obj.items = items
	return nil
}

// UnmarshalInitialized is Unmarshal that also requires the initialized flag.
func (obj *StakeListAccount) UnmarshalInitialized(data []byte) error {
	if err := obj.Unmarshal(data); err != nil {
		return err
	}
	if !obj.Header.IsInitialized {
		return errors.Wrap(ErrInvalidState, "stake list is not initialized")
	}
	return nil
}

func (obj *StakeListAccount) String() string {
	var sb strings.Builder
	for i, item := range obj.Items() {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(item.String())
	}

	return fmt.Sprintf(
		"StakeListAccount{is_initialized=%t,max_items=%d,count=%d,items=[%s]}",
		obj.Header.IsInitialized,
		obj.Header.MaxItems,
		obj.Header.Count,
		sb.String(),
	)
}
