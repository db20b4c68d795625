package notify

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

type countingSink struct{ byKind map[string]int }

func (c *countingSink) IncNotification(kind string) { c.byKind[kind]++ }

func ids(list []domain.Notification) []int64 {
	out := make([]int64, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestPushExpiresAfterTTL(t *testing.T) {
	clock := timer.NewManual(epoch)
	q := NewQueue(clock, DefaultTTL, logger.NewNop(), nil)

	n := q.Push("Сохранено", domain.KindSuccess)
	assert.Equal(t, epoch.UnixMilli(), n.ID)

	clock.Advance(4999 * time.Millisecond)
	require.Len(t, q.List(), 1)

	clock.Advance(time.Millisecond)
	assert.Empty(t, q.List())
}

func TestExpiryIsIndependentPerNotification(t *testing.T) {
	clock := timer.NewManual(epoch)
	q := NewQueue(clock, DefaultTTL, logger.NewNop(), nil)

	first := q.Push("one", domain.KindInfo)
	clock.Advance(3 * time.Second)
	second := q.Push("two", domain.KindWarning)

	clock.Advance(2 * time.Second)
	assert.Equal(t, []int64{second.ID}, ids(q.List()))

	clock.Advance(2999 * time.Millisecond)
	assert.Equal(t, []int64{second.ID}, ids(q.List()))
	assert.NotEqual(t, first.ID, second.ID)

	clock.Advance(time.Millisecond)
	assert.Empty(t, q.List())
}

func TestSameMillisecondPushesKeepBoth(t *testing.T) {
	clock := timer.NewManual(epoch)
	sink := &countingSink{byKind: map[string]int{}}
	q := NewQueue(clock, DefaultTTL, logger.NewNop(), sink)

	a := q.Push("a", domain.KindDanger)
	b := q.Push("b", domain.KindDanger)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Len(t, q.List(), 2)
	assert.Equal(t, 2, sink.byKind["danger"])

	clock.Advance(DefaultTTL)
	assert.Empty(t, q.List())
}

func TestDismiss(t *testing.T) {
	clock := timer.NewManual(epoch)
	q := NewQueue(clock, DefaultTTL, logger.NewNop(), nil)

	n := q.Push("close me", domain.KindInfo)
	assert.True(t, q.Dismiss(n.ID))
	assert.Empty(t, q.List())
	assert.False(t, q.Dismiss(n.ID))

	clock.Advance(DefaultTTL)
	assert.Empty(t, q.List())
}
