package persistence

import (
	"testing"

	gomock "go.uber.org/mock/gomock"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
	"github.com/LogosNetwork/logos-core-sub003/internal/xxxmock"
)

func TestValidateRBContinuity_WithMockTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	v := NewValidator()

	delegate := types.DelegateIdx(3)
	tip := types.Hash{1, 2, 3}
	prevRB := &types.RequestBlock{PrimaryDelegateIdx: delegate, Sequence: 5}

	tx := xxxmock.NewMockTx(ctrl)
	tx.EXPECT().GetRBTip(delegate).Return(tip, nil)
	tx.EXPECT().GetRB(tip).Return(prevRB, nil)

	next := &types.RequestBlock{PrimaryDelegateIdx: delegate, Previous: tip, Sequence: 6}
	code, err := v.ValidateRBContinuity(tx, next)
	require.NoError(t, err)
	require.Equal(t, CodeProgress, code)
}

func TestValidateRBContinuity_GapWithMockTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	v := NewValidator()

	delegate := types.DelegateIdx(3)
	tip := types.Hash{1, 2, 3}

	tx := xxxmock.NewMockTx(ctrl)
	tx.EXPECT().GetRBTip(delegate).Return(tip, nil)

	next := &types.RequestBlock{PrimaryDelegateIdx: delegate, Previous: types.Hash{9, 9}, Sequence: 6}
	code, err := v.ValidateRBContinuity(tx, next)
	require.NoError(t, err)
	require.Equal(t, CodeGapPrevious, code)
}
