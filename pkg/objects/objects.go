// Package objects resolves ledger objects and turns them into builder inputs.
//
// Nothing here caches: every call fetches a fresh snapshot. Listings are thin
// call sites of paginate.
package objects

import (
	"context"
	"encoding/json"

	"github.com/thounyy/sui-go-utils/internal/retry"
	"github.com/thounyy/sui-go-utils/pkg/paginate"
	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
)

// ObjectFetcher looks up a single object. (nil, nil) means absent.
type ObjectFetcher interface {
	Object(ctx context.Context, id sui.Address) (*sui.Object, error)
}

type ObjectLister interface {
	Objects(ctx context.Context, filter sui.ObjectFilter, cursor *string, limit int) (paginate.Page[sui.Object], error)
}

type CoinLister interface {
	Coins(ctx context.Context, filter sui.CoinFilter, cursor *string, limit int) (paginate.Page[sui.Coin], error)
}

type DynamicFieldLister interface {
	DynamicFields(ctx context.Context, parent sui.Address, cursor *string, limit int) (paginate.Page[sui.DynamicField], error)
}

// StructuredQuerier runs a query with a nested projection and decodes its data into out.
type StructuredQuerier interface {
	RunQuery(ctx context.Context, query string, variables map[string]any, out any) error
}

// Get fetches exactly one object and fails with ObjectNotFound when the
// remote has none.
func Get(ctx context.Context, q ObjectFetcher, id sui.Address) (*sui.Object, error) {
	obj, err := q.Object(ctx, id)
	if err != nil {
		return nil, remote(err)
	}
	if obj == nil {
		return nil, sui.ObjectNotFound(id)
	}
	return obj, nil
}

// AsInput wraps obj as a builder input with no usage kind set.
func AsInput(obj *sui.Object) txbuilder.ObjectInput {
	return txbuilder.FromObject(obj)
}

// GetAsInput is Get followed by AsInput. The usage kind is still unset.
func GetAsInput(ctx context.Context, q ObjectFetcher, id sui.Address) (txbuilder.ObjectInput, error) {
	obj, err := Get(ctx, q, id)
	if err != nil {
		return txbuilder.ObjectInput{}, err
	}
	return AsInput(obj), nil
}

// GetMulti lists the objects behind ids, chunking the id filter by
// paginate.MaxPageSize. Ids with no object are simply absent from the result.
func GetMulti(ctx context.Context, q ObjectLister, ids []sui.Address, limit int) ([]sui.Object, error) {
	filterFor := func(chunk []sui.Address) sui.ObjectFilter {
		return sui.ObjectFilter{ObjectIDs: chunk}
	}
	objs, err := paginate.Chunked[sui.Object, sui.Address, sui.ObjectFilter](ctx, ids, filterFor, q.Objects, limit)
	if err != nil {
		return nil, remote(err)
	}
	return objs, nil
}

// GetOwned lists owner's objects, optionally restricted to objType.
func GetOwned(ctx context.Context, q ObjectLister, owner sui.Address, objType string, limit int) ([]sui.Object, error) {
	filter := sui.ObjectFilter{Owner: &owner, Type: objType}
	objs, err := paginate.All[sui.Object, sui.ObjectFilter](ctx, q.Objects, filter, limit)
	if err != nil {
		return nil, remote(err)
	}
	return objs, nil
}

// GetOwnedCoins lists owner's coins, optionally of one coin type.
func GetOwnedCoins(ctx context.Context, q CoinLister, owner sui.Address, coinType string, limit int) ([]sui.Coin, error) {
	filter := sui.CoinFilter{Owner: owner, CoinType: coinType}
	coins, err := paginate.All[sui.Coin, sui.CoinFilter](ctx, q.Coins, filter, limit)
	if err != nil {
		return nil, remote(err)
	}
	return coins, nil
}

// GetDynamicFields lists every dynamic field under parent.
func GetDynamicFields(ctx context.Context, q DynamicFieldLister, parent sui.Address, limit int) ([]sui.DynamicField, error) {
	fields, err := paginate.All[sui.DynamicField, sui.Address](ctx, q.DynamicFields, parent, limit)
	if err != nil {
		return nil, remote(err)
	}
	return fields, nil
}

// ObjectContents is an owned object with its decoded Move contents.
type ObjectContents struct {
	ID       sui.Address
	Version  uint64
	Contents sui.MoveValue
}

const queryOwnedContents = `
query OwnedObjectContents($owner: SuiAddress!, $type: String, $first: Int, $after: String) {
	objects(filter: {owner: $owner, type: $type}, first: $first, after: $after) {
		pageInfo { hasNextPage endCursor }
		nodes {
			address
			version
			asMoveObject {
				contents { type { repr } json }
			}
		}
	}
}`

type contentsNode struct {
	Address      sui.Address `json:"address"`
	Version      uint64      `json:"version"`
	AsMoveObject *struct {
		Contents *struct {
			Type struct {
				Repr string `json:"repr"`
			} `json:"type"`
			JSON json.RawMessage `json:"json"`
		} `json:"contents"`
	} `json:"asMoveObject"`
}

type ownedFilter struct {
	owner   sui.Address
	objType string
}

func fetchOwnedContents(q StructuredQuerier) paginate.FetchFunc[contentsNode, ownedFilter] {
	return func(ctx context.Context, f ownedFilter, cursor *string, limit int) (paginate.Page[contentsNode], error) {
		var data struct {
			Objects struct {
				PageInfo struct {
					HasNextPage bool    `json:"hasNextPage"`
					EndCursor   *string `json:"endCursor"`
				} `json:"pageInfo"`
				Nodes []contentsNode `json:"nodes"`
			} `json:"objects"`
		}
		vars := map[string]any{
			"owner": f.owner.String(),
			"first": limit,
			"after": cursor,
		}
		if f.objType != "" {
			vars["type"] = f.objType
		}
		if err := q.RunQuery(ctx, queryOwnedContents, vars, &data); err != nil {
			return paginate.Page[contentsNode]{}, err
		}
		return paginate.Page[contentsNode]{
			Items:       data.Objects.Nodes,
			EndCursor:   data.Objects.PageInfo.EndCursor,
			HasNextPage: data.Objects.PageInfo.HasNextPage,
		}, nil
	}
}

// GetOwnedWithFields lists owner's objects with decoded Move contents. It
// fails with ObjectContentsNotFound on the first listed object that has none.
func GetOwnedWithFields(ctx context.Context, q StructuredQuerier, owner sui.Address, objType string, limit int) ([]ObjectContents, error) {
	out := []ObjectContents{}
	err := paginate.Each[contentsNode, ownedFilter](ctx, fetchOwnedContents(q), ownedFilter{owner: owner, objType: objType}, limit,
		func(n contentsNode) (bool, error) {
			if n.AsMoveObject == nil || n.AsMoveObject.Contents == nil {
				return false, sui.ObjectContentsNotFound(n.Address)
			}
			c := n.AsMoveObject.Contents
			out = append(out, ObjectContents{
				ID:       n.Address,
				Version:  n.Version,
				Contents: sui.MoveValue{Type: c.Type.Repr, JSON: c.JSON},
			})
			return false, nil
		})
	if err != nil {
		return nil, remote(err)
	}
	return out, nil
}

// remote tags untyped collaborator failures as RemoteQueryError. Typed
// errors pass through.
func remote(err error) error {
	return sui.RemoteQuery(err, retry.Classify(err).IsTransient())
}
