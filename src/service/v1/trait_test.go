package service

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb/traitmodel"
	"github.com/ProjectsTask/TraitSigner/src/types/v1"
)

func TestParseRequestedIds(t *testing.T) {
	cases := []struct {
		raw  string
		ids  []int64
		okay bool
	}{
		{"[1,2]", []int64{1, 2}, true},
		{" [3, 1, 3] ", []int64{3, 1, 3}, true},
		{"[]", []int64{}, true},
		{"[0]", []int64{0}, true},
		{"not-an-array", nil, false},
		{"1", nil, false},
		{"null", nil, false},
		{"{\"a\":1}", nil, false},
		{"[1.5]", nil, false},
		{"[1.0]", nil, false},
		{"[2, 3.0]", nil, false},
		{"[-1]", nil, false},
		{"[\"1\"]", nil, false},
		{"[1e2]", nil, false},
		{"[99999999999999999999]", nil, false},
		{"[1][2]", nil, false},
		{"[1,", nil, false},
	}
	for _, c := range cases {
		ids, ok := ParseRequestedIds(c.raw)
		assert.Equal(t, c.okay, ok, c.raw)
		if c.okay {
			assert.Equal(t, c.ids, ids, c.raw)
		}
	}
}

func TestParseRecordID(t *testing.T) {
	id, err := ParseRecordID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", "", "1.5", "64f1b2c3d4e5f60718293a4b"} {
		_, err := ParseRecordID(raw)
		assert.True(t, errors.Is(err, errcode.ErrInvalidID), raw)
	}
}

func TestResolveTraits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.store.UpsertTrait(ctx, traitmodel.CollectionPrimary, 1, "2.5")
	require.NoError(t, err)

	got, err := ResolveTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary, "[1,2]")
	require.NoError(t, err)
	assert.Equal(t, []types.TraitValue{{No: 1, Trait: "2.5"}, {No: 2, Trait: "1.0"}}, got)

	// 顺序与重复项保持不变
	got, err = ResolveTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary, "[2,1,2]")
	require.NoError(t, err)
	assert.Equal(t, []types.TraitValue{{No: 2, Trait: "1.0"}, {No: 1, Trait: "2.5"}, {No: 2, Trait: "1.0"}}, got)

	// utility 使用自己的记录与默认倍率
	got, err = ResolveTraits(ctx, f.svcCtx, traitmodel.CollectionUtility, "[1]")
	require.NoError(t, err)
	assert.Equal(t, []types.TraitValue{{No: 1, Trait: "3.0"}}, got)
}

func TestResolveTraitsMalformed(t *testing.T) {
	f := newFixture()

	got, err := ResolveTraits(context.Background(), f.svcCtx, traitmodel.CollectionPrimary, "not-an-array")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, f.bank.rateCalls)
	assert.Zero(t, f.store.calls)
}

func TestResolveTraitsUpstreamFailure(t *testing.T) {
	f := newFixture()
	f.bank.err = errors.New("connection refused")

	_, err := ResolveTraits(context.Background(), f.svcCtx, traitmodel.CollectionPrimary, "[1]")
	require.Error(t, err)

	f.bank.err = nil
	f.store.err = errors.New("db down")
	_, err = ResolveTraits(context.Background(), f.svcCtx, traitmodel.CollectionPrimary, "[1]")
	require.Error(t, err)
}

func TestResolveTraitsReadsRateEveryCall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ResolveTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary, "[5]")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, f.bank.rateCalls)
}

func TestDeleteTrait(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	record, err := f.store.UpsertTrait(ctx, traitmodel.CollectionPrimary, 1, "2.5")
	require.NoError(t, err)

	resp, err := DeleteTrait(ctx, f.svcCtx, traitmodel.CollectionPrimary, record.Id)
	require.NoError(t, err)
	assert.Equal(t, "Trait removed", resp.Msg)

	// 删除后回落到默认倍率
	got, err := ResolveTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary, "[1]")
	require.NoError(t, err)
	assert.Equal(t, "1.0", got[0].Trait)

	_, err = DeleteTrait(ctx, f.svcCtx, traitmodel.CollectionPrimary, record.Id)
	assert.True(t, errors.Is(err, errcode.ErrTraitNotFound))
}

func TestResetTraits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, _ = f.store.UpsertTrait(ctx, traitmodel.CollectionPrimary, 1, "2.5")
	_, _ = f.store.UpsertTrait(ctx, traitmodel.CollectionUtility, 1, "4.0")

	resp, err := ResetTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary)
	require.NoError(t, err)
	assert.Equal(t, "Trait Reset", resp.Msg)

	all, err := GetTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary)
	require.NoError(t, err)
	assert.Empty(t, all)

	// 另一个系列不受影响
	all, err = GetTraits(ctx, f.svcCtx, traitmodel.CollectionUtility)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	resp, err = ResetTraits(ctx, f.svcCtx, traitmodel.CollectionUtility)
	require.NoError(t, err)
	assert.Equal(t, "TraitUtility Reset", resp.Msg)
}

func TestGetTraitsNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, no := range []int64{1, 2, 3} {
		_, err := f.store.UpsertTrait(ctx, traitmodel.CollectionPrimary, no, "1.5")
		require.NoError(t, err)
	}

	all, err := GetTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{all[0].No, all[1].No, all[2].No})
}

func TestResolveTraitsConcurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.store.UpsertTrait(ctx, traitmodel.CollectionPrimary, 7, "0.5")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ResolveTraits(ctx, f.svcCtx, traitmodel.CollectionPrimary, "[7,8]")
			assert.NoError(t, err)
			assert.Equal(t, []types.TraitValue{{No: 7, Trait: "0.5"}, {No: 8, Trait: "1.0"}}, got)
		}()
	}
	wg.Wait()
}
