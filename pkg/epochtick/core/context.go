package core

type ctxKey string

// CtxKeyCaller holds the authenticated admin caller on request contexts.
const CtxKeyCaller ctxKey = ctxKey("caller")
