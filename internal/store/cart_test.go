package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/domain"
)

func cartLine(id string, price int64, quantity int, selected bool) domain.CartItem {
	return domain.CartItem{
		ID:        id,
		ProductID: "p-" + id,
		Name:      "item " + id,
		Price:     price,
		Quantity:  quantity,
		Selected:  selected,
	}
}

func TestMergeCart_PreservesSelectionForSurvivingLines(t *testing.T) {
	old := []domain.CartItem{
		cartLine("a", 100, 2, true),
		cartLine("b", 200, 1, false),
	}
	fresh := []domain.CartItem{
		cartLine("a", 150, 3, false), // server changed price and quantity
		cartLine("b", 200, 1, false),
		cartLine("c", 300, 1, false), // new on the server
	}

	merged := mergeCart(old, fresh)

	require.Len(t, merged, 3)
	assert.True(t, merged[0].Selected, "selection must survive the reload")
	assert.Equal(t, int64(150), merged[0].Price, "price must come from the server")
	assert.Equal(t, 3, merged[0].Quantity, "quantity must come from the server")
	assert.False(t, merged[1].Selected)
	assert.False(t, merged[2].Selected, "new lines must never appear selected")
}

func TestMergeCart_DropsLinesAbsentFromServer(t *testing.T) {
	old := []domain.CartItem{
		cartLine("a", 100, 1, true),
		cartLine("gone", 500, 2, true),
	}
	fresh := []domain.CartItem{cartLine("a", 100, 1, false)}

	merged := mergeCart(old, fresh)

	require.Len(t, merged, 1)
	assert.Equal(t, "a", merged[0].ID)
}

func TestMergeCart_Idempotent(t *testing.T) {
	old := []domain.CartItem{
		cartLine("a", 100, 2, true),
		cartLine("b", 200, 1, false),
	}
	fresh := []domain.CartItem{
		cartLine("a", 120, 4, false),
		cartLine("c", 300, 1, false),
	}

	once := mergeCart(old, fresh)
	twice := mergeCart(once, fresh)

	assert.Equal(t, once, twice)
}

func TestLoad_AppliesServerSnapshot(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{
		cartLine("a", 100, 2, false),
		cartLine("b", 200, 1, false),
	}}
	s := NewCartStore(gw, "user-1", zap.NewNop())

	require.NoError(t, s.Load(context.Background()))

	items := s.Items()
	require.Len(t, items, 2)
	assert.False(t, items[0].Selected)
	assert.False(t, items[1].Selected)
}

func TestLoad_TwiceYieldsIdenticalState(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{
		cartLine("a", 100, 2, false),
		cartLine("b", 200, 1, false),
	}}
	s := NewCartStore(gw, "user-1", zap.NewNop())

	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.ToggleSelected("a"))
	first := s.Items()

	require.NoError(t, s.Load(context.Background()))
	second := s.Items()

	assert.Equal(t, first, second)
}

func TestLoad_NetworkErrorLeavesStateUntouched(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{cartLine("a", 100, 2, false)}}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	gw.GetCartErr = errors.New("connection refused")
	err := s.Load(context.Background())

	assert.Error(t, err)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "a", s.Items()[0].ID)
}

func TestIncrement_QuantityComesFromReload(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{cartLine("a", 100, 2, true)}}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Increment(context.Background(), "a"))

	require.Len(t, gw.UpdateCalls, 1)
	assert.Equal(t, 3, gw.UpdateCalls[0].Quantity)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Selected, "selection survives the post-update reload")
}

func TestDecrement_ClampsAtOneWithoutNetworkCall(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{cartLine("a", 100, 1, false)}}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Decrement(context.Background(), "a"))

	assert.Empty(t, gw.UpdateCalls, "clamped no-op must not reach the network")
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestDecrement_FailedUpdateLeavesQuantityUnchanged(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{cartLine("a", 100, 5, false)}}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	gw.UpdateErr = errors.New("server unreachable")
	err := s.Decrement(context.Background(), "a")

	assert.Error(t, err)
	assert.Equal(t, 5, s.Items()[0].Quantity)
}

func TestIncrement_UnknownItem(t *testing.T) {
	gw := &mockGateway{}
	s := NewCartStore(gw, "user-1", zap.NewNop())

	err := s.Increment(context.Background(), "ghost")

	assert.Error(t, err)
	assert.Empty(t, gw.UpdateCalls)
}

func TestRemove_LocalRemovalOnlyAfterServerAck(t *testing.T) {
	gw := &mockGateway{
		CartLines:  []domain.CartItem{cartLine("a", 100, 1, false)},
		RemoveErrs: map[string]error{"a": errors.New("timeout")},
	}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	err := s.Remove(context.Background(), "a")

	assert.Error(t, err)
	assert.Len(t, s.Items(), 1, "failed deletion must not touch the collection")

	gw.RemoveErrs = nil
	require.NoError(t, s.Remove(context.Background(), "a"))
	assert.Empty(t, s.Items())
}

func TestRemoveAll_PartialFailureLeavesRemainder(t *testing.T) {
	items := []domain.CartItem{
		cartLine("a", 100, 1, true),
		cartLine("b", 200, 1, true),
		cartLine("c", 300, 1, true),
	}
	gw := &mockGateway{
		CartLines:  append([]domain.CartItem(nil), items...),
		RemoveErrs: map[string]error{"b": errors.New("network failure")},
	}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	remaining, err := s.RemoveAll(context.Background(), items)

	require.Error(t, err)
	assert.Equal(t, []string{"b", "c"}, remaining)
	left := s.Items()
	require.Len(t, left, 2)
	assert.Equal(t, "b", left[0].ID)
	assert.Equal(t, "c", left[1].ID)
}

func TestRemoveAll_RetryTargetsOnlyTheRemainder(t *testing.T) {
	items := []domain.CartItem{
		cartLine("a", 100, 1, true),
		cartLine("b", 200, 1, true),
	}
	gw := &mockGateway{
		CartLines:  append([]domain.CartItem(nil), items...),
		RemoveErrs: map[string]error{"b": errors.New("network failure")},
	}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	_, err := s.RemoveAll(context.Background(), items)
	require.Error(t, err)

	gw.RemoveErrs = nil
	remaining, err := s.RemoveAll(context.Background(), s.Items())
	require.NoError(t, err)
	assert.Nil(t, remaining)
	assert.Empty(t, s.Items())
	assert.Equal(t, []string{"a", "b"}, gw.RemovedIDs, "the retry must not re-delete a")
}

func TestTotal_SelectedOnly(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{
		cartLine("a", 25000, 2, false), // A: qty 2
		cartLine("b", 40000, 1, false), // B: qty 1
	}}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, int64(0), s.Total(true), "nothing selected yet")

	require.NoError(t, s.ToggleSelected("a"))
	assert.Equal(t, int64(2*25000), s.Total(true))

	require.NoError(t, s.ToggleSelected("b"))
	assert.Equal(t, int64(2*25000+40000), s.Total(true))

	assert.Equal(t, int64(2*25000+40000), s.Total(false))
}

func TestToggleSelected_UnknownItem(t *testing.T) {
	s := NewCartStore(&mockGateway{}, "user-1", zap.NewNop())
	assert.Error(t, s.ToggleSelected("ghost"))
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	gw := &mockGateway{CartLines: []domain.CartItem{
		cartLine("a", 100, 1, false),
		cartLine("b", 200, 1, false),
	}}
	s := NewCartStore(gw, "user-1", zap.NewNop())
	require.NoError(t, s.Load(context.Background()))

	// Park the next fetch in flight; its snapshot still contains b.
	started := make(chan struct{})
	release := make(chan struct{})
	gw.mu.Lock()
	gw.getCartStarted = started
	gw.getCartRelease = release
	gw.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	<-started

	// A newer command completes while the fetch is parked.
	require.NoError(t, s.Remove(context.Background(), "b"))
	require.Len(t, s.Items(), 1)

	close(release)
	require.NoError(t, <-done)

	// The stale snapshot must not resurrect the removed line.
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}
