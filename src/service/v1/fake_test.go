package service

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/ProjectsTask/TraitSigner/base/evm/attest"
	"github.com/ProjectsTask/TraitSigner/base/evm/stakebank"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/config"
	"github.com/ProjectsTask/TraitSigner/src/dao"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

const (
	testPrimary = "0x1111111111111111111111111111111111111111"
	testUtility = "0x2222222222222222222222222222222222222222"
	// 授权签名私钥
	testAuthorityKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
)

// fakeStore 内存版 TraitStore
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	now     int64
	records map[traitmodel.Collection]map[int64]*traitmodel.Trait
	calls   int
	err     error
}

var _ dao.TraitStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[traitmodel.Collection]map[int64]*traitmodel.Trait{
		traitmodel.CollectionPrimary: {},
		traitmodel.CollectionUtility: {},
	}}
}

func (s *fakeStore) UpsertTrait(_ context.Context, c traitmodel.Collection, no int64, value string) (*traitmodel.Trait, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.now++
	if r, ok := s.records[c][no]; ok {
		r.Trait = value
		r.UpdateTime = s.now
		cp := *r
		return &cp, nil
	}
	s.nextID++
	r := &traitmodel.Trait{Id: s.nextID, No: no, Trait: value, CreateTime: s.now, UpdateTime: s.now}
	s.records[c][no] = r
	cp := *r
	return &cp, nil
}

func (s *fakeStore) QueryTraitsByNos(_ context.Context, c traitmodel.Collection, nos []int64) ([]traitmodel.Trait, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []traitmodel.Trait
	seen := map[int64]bool{}
	for _, no := range nos {
		if r, ok := s.records[c][no]; ok && !seen[no] {
			seen[no] = true
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) QueryAllTraits(_ context.Context, c traitmodel.Collection) ([]traitmodel.Trait, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := []traitmodel.Trait{}
	for _, r := range s.records[c] {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateTime > out[j].CreateTime })
	return out, nil
}

func (s *fakeStore) DeleteTrait(_ context.Context, c traitmodel.Collection, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	for no, r := range s.records[c] {
		if r.Id == id {
			delete(s.records[c], no)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) DeleteAllTraits(_ context.Context, c traitmodel.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.records[c] = map[int64]*traitmodel.Trait{}
	return nil
}

func (s *fakeStore) get(c traitmodel.Collection, no int64) (traitmodel.Trait, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[c][no]
	if !ok {
		return traitmodel.Trait{}, false
	}
	return *r, true
}

// fakeBank 内存版质押合约
type fakeBank struct {
	mu         sync.Mutex
	owner      common.Address
	rates      map[common.Address]*big.Int
	ownerCalls int
	rateCalls  int
	err        error
}

var _ stakebank.Reader = (*fakeBank)(nil)

func (b *fakeBank) Owner(context.Context) (common.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ownerCalls++
	if b.err != nil {
		return common.Address{}, b.err
	}
	return b.owner, nil
}

func (b *fakeBank) BaseRate(_ context.Context, collection common.Address) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rateCalls++
	if b.err != nil {
		return nil, b.err
	}
	rate, ok := b.rates[collection]
	if !ok {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(rate), nil
}

func (b *fakeBank) SignerAddress(context.Context) (common.Address, error) {
	return common.Address{}, errors.New("not used")
}

func (b *fakeBank) setOwner(owner common.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owner = owner
}

func ether(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad number " + s)
	}
	return v
}

type fixture struct {
	svcCtx *svc.ServerCtx
	store  *fakeStore
	bank   *fakeBank
	signer *attest.Signer
}

func newFixture() *fixture {
	signer, err := attest.NewSigner(testAuthorityKey)
	if err != nil {
		panic(err)
	}
	store := newFakeStore()
	bank := &fakeBank{
		owner: signer.Address(),
		rates: map[common.Address]*big.Int{
			common.HexToAddress(testPrimary): ether("1000000000000000000"),
			common.HexToAddress(testUtility): ether("3000000000000000000"),
		},
	}
	svcCtx := svc.NewServerCtx(
		svc.WithDao(store),
		svc.WithBank(bank),
		svc.WithSigner(signer),
	)
	svcCtx.C = &config.Config{Contract: config.ContractCfg{
		PrimaryAddress: testPrimary,
		UtilityAddress: testUtility,
	}}
	return &fixture{svcCtx: svcCtx, store: store, bank: bank, signer: signer}
}
