package availability

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/crestview/facilops/internal/common/apperrors"
	"github.com/crestview/facilops/internal/portalsrv/db/dberror"
	"github.com/crestview/facilops/internal/portalsrv/db/models"
)

// ResourceStore is the slice of the datastore the resolver needs.
type ResourceStore interface {
	ListResources(ctx context.Context) ([]models.Resource, apperrors.Error)
	LookupAlias(ctx context.Context, kind models.AliasKind, value string) (*models.ResourceAlias, apperrors.Error)
	UpsertAlias(ctx context.Context, alias *models.ResourceAlias) apperrors.Error
}

// Reference is a foreign-system or free-text pointer to a resource.
type Reference struct {
	Name      string
	Code      string
	ForeignID *int64
}

// Tier records which resolution step produced a match.
type Tier string

const (
	TierAliasForeignID Tier = "alias_foreign_id"
	TierAliasName      Tier = "alias_name"
	TierCatalogName    Tier = "catalog_name"
	TierHeuristic      Tier = "heuristic"
	TierCode           Tier = "code"
)

// SiblingKind describes how a related resource constrains the target.
type SiblingKind string

const (
	// SiblingBlocking marks a space that physically contains or is
	// contained by the target (a dividable room and its sides); a
	// booking there occupies the target too.
	SiblingBlocking SiblingKind = "blocking"
	// SiblingAdjacent marks a space that merely shares a wall or
	// partition with the target.
	SiblingAdjacent SiblingKind = "adjacent"
)

type Sibling struct {
	ResourceID int64
	Name       string
	Code       string
	Kind       SiblingKind
}

// Resolution is the outcome of resolving a reference. A nil TargetID
// means the reference could not be mapped; callers must treat that as
// "cannot reason about this resource", never as a default.
type Resolution struct {
	TargetID    *int64
	TargetName  string
	TargetCode  string
	Siblings    []Sibling
	MatchedTier Tier
}

func (r *Resolution) siblingKind(resourceID int64) (SiblingKind, bool) {
	for _, s := range r.Siblings {
		if s.ResourceID == resourceID {
			return s.Kind, true
		}
	}
	return "", false
}

// Resolver maps resource references to canonical IDs: alias table
// first, then grouping heuristics over the catalog, then short codes.
type Resolver struct {
	store ResourceStore
	// persistHeuristics upserts an alias row after a successful
	// heuristic match so later lookups hit the alias table directly.
	persistHeuristics bool
}

func NewResolver(store ResourceStore, persistHeuristics bool) *Resolver {
	return &Resolver{store: store, persistHeuristics: persistHeuristics}
}

// Resolve maps the reference to a resource, first match wins:
// foreign-ID alias, name alias, exact catalog name, grouping
// heuristics, short code. A miss yields a Resolution with nil TargetID
// and no error.
func (rv *Resolver) Resolve(ctx context.Context, ref Reference) (*Resolution, apperrors.Error) {
	catalog, err := rv.store.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	// 1. foreign-ID alias
	if ref.ForeignID != nil {
		alias, err := rv.store.LookupAlias(ctx, models.AliasKindForeignID, strconv.FormatInt(*ref.ForeignID, 10))
		if err == nil {
			return rv.found(ctx, ref, alias.ResourceID, TierAliasForeignID, catalog), nil
		}
		if !err.Is(dberror.ErrNotFound) {
			return nil, err
		}
	}

	norm := normalizeName(ref.Name)

	// 2. name alias
	if norm != "" {
		alias, err := rv.store.LookupAlias(ctx, models.AliasKindName, norm)
		if err == nil {
			return rv.found(ctx, ref, alias.ResourceID, TierAliasName, catalog), nil
		}
		if !err.Is(dberror.ErrNotFound) {
			return nil, err
		}
	}

	// 3. exact catalog name
	if norm != "" {
		for _, res := range catalog {
			if normalizeName(res.Name) == norm {
				return rv.found(ctx, ref, res.ID, TierCatalogName, catalog), nil
			}
		}
	}

	// 4. grouping heuristics
	if norm != "" {
		if id, ok := matchHeuristics(norm, catalog); ok {
			resolution := rv.found(ctx, ref, id, TierHeuristic, catalog)
			if rv.persistHeuristics {
				rv.persistAlias(ctx, norm, id)
			}
			return resolution, nil
		}
	}

	// 5. short code, last resort
	code := normalizeName(ref.Code)
	if code == "" {
		code = norm
	}
	if code != "" {
		alias, err := rv.store.LookupAlias(ctx, models.AliasKindCode, code)
		if err == nil {
			return rv.found(ctx, ref, alias.ResourceID, TierCode, catalog), nil
		}
		if !err.Is(dberror.ErrNotFound) {
			return nil, err
		}
		for _, res := range catalog {
			if res.Code != "" && normalizeName(res.Code) == code {
				return rv.found(ctx, ref, res.ID, TierCode, catalog), nil
			}
		}
	}

	return &Resolution{}, nil
}

func (rv *Resolver) found(ctx context.Context, ref Reference, id int64, tier Tier, catalog []models.Resource) *Resolution {
	resolution := &Resolution{
		TargetID:    &id,
		MatchedTier: tier,
	}
	var target *models.Resource
	for i := range catalog {
		if catalog[i].ID == id {
			target = &catalog[i]
			break
		}
	}
	if target == nil {
		// alias points at a resource missing from the catalog; still a
		// valid resolution, just without sibling knowledge
		log.Ctx(ctx).Warn().Int64("resource_id", id).Msg("alias maps to resource not in catalog")
		return resolution
	}
	resolution.TargetName = target.Name
	resolution.TargetCode = target.Code
	resolution.Siblings = siblingsOf(*target, catalog)
	return resolution
}

func (rv *Resolver) persistAlias(ctx context.Context, norm string, id int64) {
	alias := &models.ResourceAlias{
		ResourceID: id,
		Kind:       models.AliasKindName,
		Value:      norm,
	}
	// best effort: a failed upsert only costs a future heuristic pass
	if err := rv.store.UpsertAlias(ctx, alias); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("alias", norm).Msg("failed to persist heuristic alias")
	}
}

var spaceRun = regexp.MustCompile(`\s+`)

func normalizeName(s string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// matchHeuristics applies the grouping rules against the catalog and
// returns a deterministic best match: the family parent (shortest
// matching name) first, ties broken by lowest ID.
func matchHeuristics(norm string, catalog []models.Resource) (int64, bool) {
	var (
		best     int64
		bestName string
		ok       bool
	)
	consider := func(res models.Resource, resNorm string) {
		if !ok || len(resNorm) < len(bestName) || (len(resNorm) == len(bestName) && res.ID < best) {
			best, bestName, ok = res.ID, resNorm, true
		}
	}
	refDigits := leadingDigits(norm)
	for _, res := range catalog {
		resNorm := normalizeName(res.Name)
		if resNorm == "" {
			continue
		}
		// numbered room family: identical leading digit runs
		if refDigits != "" && leadingDigits(resNorm) == refDigits {
			consider(res, resNorm)
			continue
		}
		// subdivision family: one name is a prefix of the other
		// followed by a letter, space, or hyphen ("313" / "313A",
		// "north hall" / "north hall 2"); matches in both directions
		if prefixFamily(norm, resNorm) || prefixFamily(resNorm, norm) {
			consider(res, resNorm)
		}
	}
	return best, ok
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func prefixFamily(prefix, full string) bool {
	if prefix == "" || len(full) <= len(prefix) || !strings.HasPrefix(full, prefix) {
		return false
	}
	next := full[len(prefix)]
	return next == ' ' || next == '-' || (next >= 'a' && next <= 'z')
}

var sidePattern = regexp.MustCompile(`^(.*\S)\s+side\s+(\d+)$`)

// siblingsOf derives the target's related resources from the catalog.
// "<Base> Side <N>" spaces block their base room and are adjacent to
// the other side; plain family members (numbered or subdivided rooms)
// are adjacent.
func siblingsOf(target models.Resource, catalog []models.Resource) []Sibling {
	targetNorm := normalizeName(target.Name)
	targetSide := sidePattern.FindStringSubmatch(targetNorm)
	targetDigits := leadingDigits(targetNorm)

	var out []Sibling
	for _, res := range catalog {
		if res.ID == target.ID {
			continue
		}
		resNorm := normalizeName(res.Name)
		resSide := sidePattern.FindStringSubmatch(resNorm)

		switch {
		case targetSide != nil && resNorm == targetSide[1]:
			// the base room encompasses this side
			out = append(out, Sibling{ResourceID: res.ID, Name: res.Name, Code: res.Code, Kind: SiblingBlocking})
		case targetSide != nil && resSide != nil && resSide[1] == targetSide[1]:
			// the other side of the same dividable space
			out = append(out, Sibling{ResourceID: res.ID, Name: res.Name, Code: res.Code, Kind: SiblingAdjacent})
		case targetSide == nil && resSide != nil && resSide[1] == targetNorm:
			// target is the base; its sides occupy it when booked
			out = append(out, Sibling{ResourceID: res.ID, Name: res.Name, Code: res.Code, Kind: SiblingBlocking})
		case targetDigits != "" && leadingDigits(resNorm) == targetDigits,
			prefixFamily(targetNorm, resNorm), prefixFamily(resNorm, targetNorm):
			out = append(out, Sibling{ResourceID: res.ID, Name: res.Name, Code: res.Code, Kind: SiblingAdjacent})
		}
	}
	return out
}
