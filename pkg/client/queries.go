package client

const objectFragment = `
fragment ObjectFields on Object {
	address
	version
	digest
	owner {
		__typename
		... on AddressOwner { owner { address } }
		... on Parent { parent { address } }
		... on Shared { initialSharedVersion }
	}
	asMoveObject {
		contents { type { repr } json bcs }
	}
	bcs
}`

const effectsFragment = `
fragment EffectsFields on TransactionBlockEffects {
	status
	errors
	lamportVersion
	checkpoint { sequenceNumber }
	gasEffects {
		gasSummary { computationCost storageCost storageRebate nonRefundableStorageFee }
	}
	transactionBlock { digest }
}`

const pageInfoFields = `pageInfo { hasNextPage endCursor }`

const queryObject = `
query Object($id: SuiAddress!) {
	object(address: $id) { ...ObjectFields }
}` + objectFragment

const queryObjects = `
query Objects($filter: ObjectFilter, $first: Int, $after: String) {
	objects(filter: $filter, first: $first, after: $after) {
		` + pageInfoFields + `
		nodes { ...ObjectFields }
	}
}` + objectFragment

const queryCoins = `
query Coins($owner: SuiAddress!, $type: String, $first: Int, $after: String) {
	address(address: $owner) {
		coins(type: $type, first: $first, after: $after) {
			` + pageInfoFields + `
			nodes {
				address
				version
				digest
				coinBalance
				contents { type { repr } }
			}
		}
	}
}`

const queryDynamicFields = `
query DynamicFields($parent: SuiAddress!, $first: Int, $after: String) {
	owner(address: $parent) {
		dynamicFields(first: $first, after: $after) {
			` + pageInfoFields + `
			nodes {
				name { type { repr } json bcs }
				value {
					__typename
					... on MoveValue { type { repr } json bcs }
					... on MoveObject { address }
				}
			}
		}
	}
}`

const queryReferenceGasPrice = `
query ReferenceGasPrice {
	epoch { referenceGasPrice }
}`

const mutationExecuteTransaction = `
mutation ExecuteTransaction($txBytes: String!, $signatures: [String!]!) {
	executeTransactionBlock(txBytes: $txBytes, signatures: $signatures) {
		errors
		effects { ...EffectsFields }
	}
}` + effectsFragment

const queryTransactionBlock = `
query TransactionBlock($digest: String!) {
	transactionBlock(digest: $digest) {
		digest
		effects { ...EffectsFields }
	}
}` + effectsFragment
