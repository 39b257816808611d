package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
)

type resolvedAccount struct {
	id    uuid.UUID
	found bool
}

// accountResolver performs owner-scoped lookups for a single submission.
// Account codes are memoized so a code repeated across rows costs one query.
type accountResolver struct {
	ownerID  uuid.UUID
	accounts AccountLookup
	parties  PartyLookup
	seen     map[string]resolvedAccount
}

func newAccountResolver(ownerID uuid.UUID, accounts AccountLookup, parties PartyLookup) *accountResolver {
	return &accountResolver{
		ownerID:  ownerID,
		accounts: accounts,
		parties:  parties,
		seen:     make(map[string]resolvedAccount),
	}
}

func (r *accountResolver) resolveAccount(ctx context.Context, code string) (uuid.UUID, bool, error) {
	if hit, ok := r.seen[code]; ok {
		return hit.id, hit.found, nil
	}

	id, found, err := r.accounts.FindAccountID(ctx, r.ownerID, code)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}

	r.seen[code] = resolvedAccount{id: id, found: found}
	return id, found, nil
}

func (r *accountResolver) resolveParty(ctx context.Context, kind party.Kind, name string) (uuid.UUID, bool, error) {
	id, found, err := r.parties.FindPartyID(ctx, r.ownerID, kind, name)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to resolve %s %q: %w", kind, name, err)
	}
	return id, found, nil
}
