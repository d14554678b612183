package queue

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{name: "Empty", values: []string{}, expected: []string{}},
		{name: "Single", values: []string{"a"}, expected: []string{"a"}},
		{name: "Two", values: []string{"b", "a"}, expected: []string{"a", "b"}},
		{name: "Sorted", values: []string{"a", "b", "c"}, expected: []string{"a", "b", "c"}},
		{name: "Reversed", values: []string{"d", "c", "b", "a"}, expected: []string{"a", "b", "c", "d"}},
		{
			name:     "Byte-wise",
			values:   []string{"b", "B", "a", "ab", "", "A"},
			expected: []string{"", "A", "B", "a", "ab", "b"},
		},
		{
			name:     "Duplicates",
			values:   []string{"3", "1", "3", "2", "1"},
			expected: []string{"1", "1", "2", "3", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, tracker := newTestQueue(t, tt.values...)
			before := tracker.Stats()

			q.Sort()
			assert.Equal(t, tt.expected, q.Values())
			assert.True(t, q.IsSorted(false))
			assert.Equal(t, before, tracker.Stats())
			assertConsistent(t, q)
			assertNoLeaks(t, q, tracker)
		})
	}
}

func TestSortIsStable(t *testing.T) {
	q, tracker := newTestQueue(t, "b", "a", "b", "a", "b")

	elements := []*Element{}
	q.head.Each(func(e *Element) bool {
		elements = append(elements, e)
		return true
	})

	q.Sort()

	sorted := []*Element{}
	q.head.Each(func(e *Element) bool {
		sorted = append(sorted, e)
		return true
	})

	expected := []*Element{elements[1], elements[3], elements[0], elements[2], elements[4]}
	require.Len(t, sorted, len(expected))
	for i := range expected {
		assert.Same(t, expected[i], sorted[i])
	}

	assertNoLeaks(t, q, tracker)
}

func TestSortDescending(t *testing.T) {
	q, tracker := newTestQueue(t, "b", "d", "a", "c", "b")

	q.SortDescending()
	assert.Equal(t, []string{"d", "c", "b", "b", "a"}, q.Values())
	assert.True(t, q.IsSorted(true))
	assert.False(t, q.IsSorted(false))
	assertConsistent(t, q)

	assertNoLeaks(t, q, tracker)
}

func randomString(rnd *rand.Rand) string {
	const letters = "abcdefghij"

	var sb strings.Builder
	for i := 0; i < 1+rnd.Intn(4); i++ {
		sb.WriteByte(letters[rnd.Intn(len(letters))])
	}

	return sb.String()
}

func TestSortRandomised(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for _, size := range []int{2, 3, 10, 100, 1000} {
		t.Run(fmt.Sprintf("Size %d", size), func(t *testing.T) {
			values := make([]string, size)
			for i := range values {
				values[i] = randomString(rnd)
			}

			q, tracker := newTestQueue(t, values...)

			expected := append([]string{}, values...)
			sort.Strings(expected)

			q.Sort()
			assert.Equal(t, expected, q.Values())
			assertConsistent(t, q)

			q.Sort()
			assert.Equal(t, expected, q.Values())

			assert.True(t, q.DeleteDup())
			assert.True(t, q.IsSorted(false))
			seen := map[string]int{}
			for _, v := range values {
				seen[v]++
			}
			for _, v := range q.Values() {
				assert.Equal(t, 1, seen[v])
			}
			assertConsistent(t, q)

			assertNoLeaks(t, q, tracker)
		})
	}
}

func TestOperationsKeepSizeAndOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	q, tracker := newTestQueue(t)
	model := []string{}

	for i := 0; i < 2000; i++ {
		value := randomString(rnd)
		switch rnd.Intn(4) {
		case 0:
			require.True(t, q.InsertHead(value))
			model = append([]string{value}, model...)
		case 1:
			require.True(t, q.InsertTail(value))
			model = append(model, value)
		case 2:
			e := q.RemoveHead(nil)
			if len(model) == 0 {
				assert.Nil(t, e)
				continue
			}
			require.NotNil(t, e)
			assert.Equal(t, model[0], e.Value)
			require.NoError(t, e.Release())
			model = model[1:]
		case 3:
			e := q.RemoveTail(nil)
			if len(model) == 0 {
				assert.Nil(t, e)
				continue
			}
			require.NotNil(t, e)
			assert.Equal(t, model[len(model)-1], e.Value)
			require.NoError(t, e.Release())
			model = model[:len(model)-1]
		}

		require.Equal(t, len(model), q.Size())
	}

	assert.Equal(t, model, q.Values())
	assertConsistent(t, q)
	assertNoLeaks(t, q, tracker)
}
