package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/thounyy/sui-go-utils/internal/metrics"
	"github.com/thounyy/sui-go-utils/pkg/paginate"
	"github.com/thounyy/sui-go-utils/pkg/sui"
)

// Object fetches one object. A nil object with a nil error means the remote
// has no object under id.
func (c *Client) Object(ctx context.Context, id sui.Address) (*sui.Object, error) {
	var data struct {
		Object *objectNode `json:"object"`
	}
	vars := map[string]any{"id": id.String()}
	if err := c.do(ctx, "Object", queryObject, vars, &data); err != nil {
		return nil, err
	}
	if data.Object == nil {
		return nil, nil
	}
	return data.Object.toObject(), nil
}

// Objects fetches one page of objects matching filter.
func (c *Client) Objects(ctx context.Context, filter sui.ObjectFilter, cursor *string, limit int) (paginate.Page[sui.Object], error) {
	var data struct {
		Objects objectConnection `json:"objects"`
	}
	vars := map[string]any{
		"filter": objectFilterVars(filter),
		"first":  paginate.Limit(limit),
		"after":  cursor,
	}
	if err := c.do(ctx, "Objects", queryObjects, vars, &data); err != nil {
		return paginate.Page[sui.Object]{}, err
	}
	metrics.RemotePagesFetched.WithLabelValues("Objects").Inc()

	items := make([]sui.Object, 0, len(data.Objects.Nodes))
	for i := range data.Objects.Nodes {
		items = append(items, *data.Objects.Nodes[i].toObject())
	}
	return paginate.Page[sui.Object]{
		Items:       items,
		EndCursor:   data.Objects.PageInfo.EndCursor,
		HasNextPage: data.Objects.PageInfo.HasNextPage,
	}, nil
}

func objectFilterVars(filter sui.ObjectFilter) map[string]any {
	vars := map[string]any{}
	if filter.Owner != nil {
		vars["owner"] = filter.Owner.String()
	}
	if filter.Type != "" {
		vars["type"] = filter.Type
	}
	if len(filter.ObjectIDs) > 0 {
		ids := make([]string, len(filter.ObjectIDs))
		for i, id := range filter.ObjectIDs {
			ids[i] = id.String()
		}
		vars["objectIds"] = ids
	}
	return vars
}

// Coins fetches one page of filter.Owner's coins. An unknown owner yields an
// empty final page.
func (c *Client) Coins(ctx context.Context, filter sui.CoinFilter, cursor *string, limit int) (paginate.Page[sui.Coin], error) {
	var data struct {
		Address *struct {
			Coins coinConnection `json:"coins"`
		} `json:"address"`
	}
	vars := map[string]any{
		"owner": filter.Owner.String(),
		"first": paginate.Limit(limit),
		"after": cursor,
	}
	if filter.CoinType != "" {
		vars["type"] = filter.CoinType
	}
	if err := c.do(ctx, "Coins", queryCoins, vars, &data); err != nil {
		return paginate.Page[sui.Coin]{}, err
	}
	metrics.RemotePagesFetched.WithLabelValues("Coins").Inc()
	if data.Address == nil {
		return paginate.Page[sui.Coin]{Items: []sui.Coin{}}, nil
	}

	conn := data.Address.Coins
	items := make([]sui.Coin, 0, len(conn.Nodes))
	for _, n := range conn.Nodes {
		coin := sui.Coin{
			ID:      n.Address,
			Version: n.Version,
			Digest:  n.Digest,
			Owner:   filter.Owner,
		}
		if n.CoinBalance != nil {
			coin.Balance = uint64(*n.CoinBalance)
		}
		if n.Contents != nil {
			coin.CoinType = n.Contents.Type.Repr
		}
		items = append(items, coin)
	}
	return paginate.Page[sui.Coin]{
		Items:       items,
		EndCursor:   conn.PageInfo.EndCursor,
		HasNextPage: conn.PageInfo.HasNextPage,
	}, nil
}

// DynamicFields fetches one page of the dynamic fields under parent.
func (c *Client) DynamicFields(ctx context.Context, parent sui.Address, cursor *string, limit int) (paginate.Page[sui.DynamicField], error) {
	var data struct {
		Owner *struct {
			DynamicFields dynamicFieldConnection `json:"dynamicFields"`
		} `json:"owner"`
	}
	vars := map[string]any{
		"parent": parent.String(),
		"first":  paginate.Limit(limit),
		"after":  cursor,
	}
	if err := c.do(ctx, "DynamicFields", queryDynamicFields, vars, &data); err != nil {
		return paginate.Page[sui.DynamicField]{}, err
	}
	metrics.RemotePagesFetched.WithLabelValues("DynamicFields").Inc()
	if data.Owner == nil {
		return paginate.Page[sui.DynamicField]{Items: []sui.DynamicField{}}, nil
	}

	conn := data.Owner.DynamicFields
	items := make([]sui.DynamicField, 0, len(conn.Nodes))
	for i := range conn.Nodes {
		items = append(items, conn.Nodes[i].toDynamicField())
	}
	return paginate.Page[sui.DynamicField]{
		Items:       items,
		EndCursor:   conn.PageInfo.EndCursor,
		HasNextPage: conn.PageInfo.HasNextPage,
	}, nil
}

// ReferenceGasPrice returns the current epoch's reference gas price, or nil
// when the remote does not report one.
func (c *Client) ReferenceGasPrice(ctx context.Context) (*uint64, error) {
	var data struct {
		Epoch *struct {
			ReferenceGasPrice *bigInt `json:"referenceGasPrice"`
		} `json:"epoch"`
	}
	if err := c.do(ctx, "ReferenceGasPrice", queryReferenceGasPrice, nil, &data); err != nil {
		return nil, err
	}
	if data.Epoch == nil || data.Epoch.ReferenceGasPrice == nil {
		return nil, nil
	}
	price := uint64(*data.Epoch.ReferenceGasPrice)
	return &price, nil
}

// ExecuteTransaction submits signed transaction bytes. The returned effects
// are nil when the remote defers them; callers then poll Transaction.
func (c *Client) ExecuteTransaction(ctx context.Context, txBytes []byte, signatures []sui.UserSignature) (*sui.TransactionEffects, error) {
	sigs := make([]string, len(signatures))
	for i, s := range signatures {
		sigs[i] = string(s)
	}
	var data struct {
		ExecuteTransactionBlock struct {
			Errors  []string     `json:"errors"`
			Effects *effectsNode `json:"effects"`
		} `json:"executeTransactionBlock"`
	}
	vars := map[string]any{
		"txBytes":    base64.StdEncoding.EncodeToString(txBytes),
		"signatures": sigs,
	}
	if err := c.do(ctx, "ExecuteTransaction", mutationExecuteTransaction, vars, &data); err != nil {
		return nil, err
	}

	result := data.ExecuteTransactionBlock
	if len(result.Errors) > 0 {
		return nil, sui.RemoteQuery(
			fmt.Errorf("ExecuteTransaction: rejected: %s", strings.Join(result.Errors, "; ")),
			false,
		)
	}
	return result.Effects.toEffects(), nil
}

// Transaction looks up the finality record for digest. A nil record with a
// nil error means the ledger does not know the transaction yet.
func (c *Client) Transaction(ctx context.Context, digest sui.Digest) (*sui.TransactionBlock, error) {
	var data struct {
		TransactionBlock *struct {
			Digest  sui.Digest   `json:"digest"`
			Effects *effectsNode `json:"effects"`
		} `json:"transactionBlock"`
	}
	vars := map[string]any{"digest": digest.String()}
	if err := c.do(ctx, "TransactionBlock", queryTransactionBlock, vars, &data); err != nil {
		return nil, err
	}
	if data.TransactionBlock == nil {
		return nil, nil
	}

	block := &sui.TransactionBlock{
		Digest:  data.TransactionBlock.Digest,
		Effects: data.TransactionBlock.Effects.toEffects(),
	}
	if block.Effects != nil && block.Effects.Digest.IsZero() {
		block.Effects.Digest = block.Digest
	}
	return block, nil
}
