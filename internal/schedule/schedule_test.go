package schedule

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsInDueOrder(t *testing.T) {
	mock := clock.NewMock()
	q := NewQueue(mock)
	var got []string
	q.After(120*time.Millisecond, func() { got = append(got, "late") })
	q.After(60*time.Millisecond, func() { got = append(got, "early") })

	assert.Equal(t, 0, q.RunDue())
	Advance(mock, q, 60*time.Millisecond)
	assert.Equal(t, []string{"early"}, got)
	Advance(mock, q, 60*time.Millisecond)
	assert.Equal(t, []string{"early", "late"}, got)
	assert.Equal(t, 0, q.Len())
}

func TestQueueTiesRunInScheduleOrder(t *testing.T) {
	mock := clock.NewMock()
	q := NewQueue(mock)
	value := ""
	q.After(60*time.Millisecond, func() { value = "first" })
	q.After(60*time.Millisecond, func() { value = "second" })
	Advance(mock, q, time.Second)
	assert.Equal(t, "second", value, "last scheduled write should win")
}

func TestQueueNestedSchedulingObservesClock(t *testing.T) {
	mock := clock.NewMock()
	q := NewQueue(mock)
	start := mock.Now()
	var stamps []time.Duration
	q.After(120*time.Millisecond, func() {
		stamps = append(stamps, mock.Now().Sub(start))
		q.After(60*time.Millisecond, func() {
			stamps = append(stamps, mock.Now().Sub(start))
		})
	})
	Advance(mock, q, 500*time.Millisecond)
	require.Len(t, stamps, 2)
	assert.Equal(t, 120*time.Millisecond, stamps[0])
	assert.Equal(t, 180*time.Millisecond, stamps[1])
	assert.Equal(t, 500*time.Millisecond, mock.Now().Sub(start))
}

func TestQueueNext(t *testing.T) {
	mock := clock.NewMock()
	q := NewQueue(mock)
	_, ok := q.Next()
	assert.False(t, ok)

	q.After(40*time.Millisecond, func() {})
	wait, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, 40*time.Millisecond, wait)

	mock.Add(time.Second)
	wait, _ = q.Next()
	assert.Equal(t, time.Duration(0), wait)
	assert.Equal(t, 1, q.RunDue())
}

func TestQueueIgnoresNilAndClampsNegative(t *testing.T) {
	mock := clock.NewMock()
	q := NewQueue(mock)
	q.After(time.Second, nil)
	assert.Equal(t, 0, q.Len())

	ran := false
	q.After(-time.Second, func() { ran = true })
	assert.Equal(t, 1, q.RunDue())
	assert.True(t, ran)
}
