package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/dberror"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

type fakeResourceStore struct {
	resources []models.Resource
	aliases   map[string]models.ResourceAlias
	upserts   []models.ResourceAlias
	listErr   apperrors.Error
}

func newFakeResourceStore(resources ...models.Resource) *fakeResourceStore {
	return &fakeResourceStore{
		resources: resources,
		aliases:   make(map[string]models.ResourceAlias),
	}
}

func (f *fakeResourceStore) addAlias(resourceID int64, kind models.AliasKind, value string) {
	f.aliases[string(kind)+"|"+value] = models.ResourceAlias{
		ResourceID: resourceID,
		Kind:       kind,
		Value:      value,
	}
}

func (f *fakeResourceStore) ListResources(_ context.Context) ([]models.Resource, apperrors.Error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.resources, nil
}

func (f *fakeResourceStore) LookupAlias(_ context.Context, kind models.AliasKind, value string) (*models.ResourceAlias, apperrors.Error) {
	if a, ok := f.aliases[string(kind)+"|"+value]; ok {
		return &a, nil
	}
	return nil, dberror.ErrNotFound.Msg("alias not found")
}

func (f *fakeResourceStore) UpsertAlias(_ context.Context, alias *models.ResourceAlias) apperrors.Error {
	f.upserts = append(f.upserts, *alias)
	f.aliases[string(alias.Kind)+"|"+alias.Value] = *alias
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestResolverTiers(t *testing.T) {
	store := newFakeResourceStore(
		models.Resource{ID: 1, Name: "Gymnasium", Code: "GYM"},
		models.Resource{ID: 2, Name: "Room 313"},
		models.Resource{ID: 3, Name: "Performing Arts Center", Code: "PAC"},
	)
	store.addAlias(2, models.AliasKindForeignID, "9001")
	store.addAlias(1, models.AliasKindName, "the big gym")
	rv := NewResolver(store, false)

	t.Run("foreign id alias wins over name", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{
			Name:      "Gymnasium",
			ForeignID: int64Ptr(9001),
		})
		require.Nil(t, err)
		require.NotNil(t, res.TargetID)
		assert.Equal(t, int64(2), *res.TargetID)
		assert.Equal(t, TierAliasForeignID, res.MatchedTier)
	})

	t.Run("name alias", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "  The  BIG gym "})
		require.Nil(t, err)
		require.NotNil(t, res.TargetID)
		assert.Equal(t, int64(1), *res.TargetID)
		assert.Equal(t, TierAliasName, res.MatchedTier)
	})

	t.Run("exact catalog name, case and space insensitive", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "room  313"})
		require.Nil(t, err)
		require.NotNil(t, res.TargetID)
		assert.Equal(t, int64(2), *res.TargetID)
		assert.Equal(t, TierCatalogName, res.MatchedTier)
	})

	t.Run("code as last resort", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "PAC"})
		require.Nil(t, err)
		require.NotNil(t, res.TargetID)
		assert.Equal(t, int64(3), *res.TargetID)
		assert.Equal(t, TierCode, res.MatchedTier)
	})

	t.Run("miss resolves to nil target without error", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "parking lot"})
		require.Nil(t, err)
		assert.Nil(t, res.TargetID)
	})
}

func TestResolverHeuristics(t *testing.T) {
	store := newFakeResourceStore(
		models.Resource{ID: 10, Name: "313"},
		models.Resource{ID: 11, Name: "313A"},
		models.Resource{ID: 12, Name: "North Hall"},
		models.Resource{ID: 13, Name: "North Hall 2"},
	)

	t.Run("numbered family resolves to shortest name", func(t *testing.T) {
		rv := NewResolver(store, false)
		res, err := rv.Resolve(context.Background(), Reference{Name: "313 Science Lab"})
		require.Nil(t, err)
		require.NotNil(t, res.TargetID)
		assert.Equal(t, int64(10), *res.TargetID)
		assert.Equal(t, TierHeuristic, res.MatchedTier)
	})

	t.Run("subdivision prefix family", func(t *testing.T) {
		rv := NewResolver(store, false)
		res, err := rv.Resolve(context.Background(), Reference{Name: "North Hall Annex"})
		require.Nil(t, err)
		require.NotNil(t, res.TargetID)
		assert.Equal(t, int64(12), *res.TargetID)
		assert.Equal(t, TierHeuristic, res.MatchedTier)
	})

	t.Run("heuristic match is persisted as a name alias", func(t *testing.T) {
		persisting := newFakeResourceStore(store.resources...)
		rv := NewResolver(persisting, true)
		_, err := rv.Resolve(context.Background(), Reference{Name: "313 Science Lab"})
		require.Nil(t, err)
		require.Len(t, persisting.upserts, 1)
		assert.Equal(t, models.AliasKindName, persisting.upserts[0].Kind)
		assert.Equal(t, "313 science lab", persisting.upserts[0].Value)
		assert.Equal(t, int64(10), persisting.upserts[0].ResourceID)

		// second lookup hits the alias table directly
		res, err := rv.Resolve(context.Background(), Reference{Name: "313 Science Lab"})
		require.Nil(t, err)
		assert.Equal(t, TierAliasName, res.MatchedTier)
	})
}

func TestResolverSiblings(t *testing.T) {
	store := newFakeResourceStore(
		models.Resource{ID: 1, Name: "Commons"},
		models.Resource{ID: 2, Name: "Commons Side 1"},
		models.Resource{ID: 3, Name: "Commons Side 2"},
		models.Resource{ID: 4, Name: "Library"},
	)
	rv := NewResolver(store, false)

	kinds := func(res *Resolution) map[int64]SiblingKind {
		out := make(map[int64]SiblingKind)
		for _, s := range res.Siblings {
			out[s.ResourceID] = s.Kind
		}
		return out
	}

	t.Run("base room sees its sides as blocking", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "Commons"})
		require.Nil(t, err)
		got := kinds(res)
		assert.Equal(t, SiblingBlocking, got[2])
		assert.Equal(t, SiblingBlocking, got[3])
		assert.NotContains(t, got, int64(4))
	})

	t.Run("side sees base as blocking and other side as adjacent", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "Commons Side 1"})
		require.Nil(t, err)
		got := kinds(res)
		assert.Equal(t, SiblingBlocking, got[1])
		assert.Equal(t, SiblingAdjacent, got[3])
	})

	t.Run("standalone room has no siblings", func(t *testing.T) {
		res, err := rv.Resolve(context.Background(), Reference{Name: "Library"})
		require.Nil(t, err)
		assert.Empty(t, res.Siblings)
	})
}
