package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes"
)

func TestViewKinds(t *testing.T) {
	tests := []struct {
		view View
		want []Kind
	}{
		{ViewDeployments, []Kind{KindDeployments}},
		{ViewPods, []Kind{KindPods}},
		{ViewServices, []Kind{KindServices, KindIngresses}},
		{ViewConfig, []Kind{KindConfigMaps, KindSecrets}},
		{ViewJobs, []Kind{KindJobs}},
		{ViewCronJobs, []Kind{KindCronJobs}},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.Kinds())
		})
	}
}

func TestViewNextCycles(t *testing.T) {
	seen := make(map[View]bool)
	view := ViewDeployments
	for range AllViews {
		seen[view] = true
		view = view.Next()
	}

	assert.Equal(t, ViewDeployments, view)
	assert.Len(t, seen, len(AllViews))
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "Deployments", ViewDeployments.String())
	assert.Equal(t, "CronJobs", ViewCronJobs.String())
	assert.Equal(t, "Unknown", View(99).String())
}

func TestKindTableMatchesViews(t *testing.T) {
	// Every kind belongs to its owning view's kind list.
	for kind, desc := range kindTable {
		require.NotNil(t, desc.list, kind)
		assert.Contains(t, desc.view.Kinds(), kind)
	}

	// And walking the views covers the whole table exactly once.
	total := 0
	for _, view := range AllViews {
		for _, kind := range view.Kinds() {
			desc, ok := kindTable[kind]
			require.True(t, ok, kind)
			assert.Equal(t, view, desc.view)
			total++
		}
	}
	assert.Equal(t, len(kindTable), total)
}

func TestBoxList(t *testing.T) {
	boxed := boxList(func(ctx context.Context, client kubernetes.Interface, namespace string) ([]string, error) {
		return []string{"a", "b"}, nil
	})

	items, err := boxed(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, items)

	failing := boxList(func(ctx context.Context, client kubernetes.Interface, namespace string) ([]string, error) {
		return nil, errors.New("boom")
	})

	_, err = failing(context.Background(), nil, "")
	assert.EqualError(t, err, "boom")
}
