package ds_test

import (
	"slices"
	"testing"

	"github.com/buildbarn/bb-holeyslice/pkg/ds"
	"github.com/buildbarn/bb-storage/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestSynchronizedContainer(t *testing.T) {
	t.Run("Forwarding", func(t *testing.T) {
		c := ds.NewSynchronizedContainer[string](ds.NewHoleySlice[string]())
		require.Equal(t, 0, c.Push("a"))
		require.Equal(t, 1, c.Push("b"))
		require.Equal(t, 2, c.Push("c"))

		value, err := c.Remove(1)
		require.NoError(t, err)
		require.Equal(t, "b", value)
		_, err = c.Remove(1)
		testutil.RequireEqualStatus(t, status.Error(codes.NotFound, "Index 1 refers to a hole"), err)

		value, err = c.Get(2)
		require.NoError(t, err)
		require.Equal(t, "c", value)
		_, err = c.Get(3)
		testutil.RequireEqualStatus(t, status.Error(codes.OutOfRange, "Index 3 is out of range, as the slice only has 3 slots"), err)

		require.Equal(t, 2, c.Len())
		require.Equal(t, 3, c.SlotCount())
		require.Equal(t, []string{"a", "c"}, c.Snapshot())

		var indices []int
		for index := range c.All() {
			indices = append(indices, index)
		}
		require.Equal(t, []int{0, 2}, indices)
	})

	t.Run("Update", func(t *testing.T) {
		c := ds.NewSynchronizedContainer[int](ds.NewHoleySlice[int]())
		c.Push(1)
		c.Push(2)
		require.NoError(t, c.Update(1, func(value *int) { *value += 40 }))
		require.Equal(t, []int{1, 42}, c.Snapshot())

		_, err := c.Remove(0)
		require.NoError(t, err)
		testutil.RequireEqualStatus(
			t,
			status.Error(codes.NotFound, "Index 0 refers to a hole"),
			c.Update(0, func(value *int) { t.Fatal("Callback should not be invoked for holes") }))
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Let a number of goroutines repeatedly claim a slot,
		// modify it and release it again. As every goroutine
		// holds at most one slot at a time, the number of slots
		// may never exceed the number of goroutines.
		const goroutines = 16
		c := ds.NewSynchronizedContainer[int](ds.NewHoleySlice[int]())
		var group errgroup.Group
		for i := 0; i < goroutines; i++ {
			group.Go(func() error {
				for j := 0; j < 1000; j++ {
					index := c.Push(j)
					if err := c.Update(index, func(value *int) { *value *= 2 }); err != nil {
						return err
					}
					value, err := c.Remove(index)
					if err != nil {
						return err
					}
					if value != 2*j {
						return status.Errorf(codes.Internal, "Slot %d contained %d, while %d was expected", index, value, 2*j)
					}
				}
				c.Push(i)
				return nil
			})
		}
		require.NoError(t, group.Wait())

		require.Equal(t, goroutines, c.Len())
		require.Equal(t, goroutines, c.SlotCount())
		snapshot := c.Snapshot()
		slices.Sort(snapshot)
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, snapshot)
	})
}
