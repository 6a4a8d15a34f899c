package engine

import "errors"

// Purchase and use failures. Distinct values so the caller can tell a
// funds problem from an ownership or catalog problem.
var (
	ErrUnknownItem        = errors.New("unknown store item")
	ErrAlreadyOwned       = errors.New("item already owned")
	ErrInsufficientPoints = errors.New("not enough tomato points")
	ErrNotConsumable      = errors.New("item is not consumable")
	ErrNoneLeft           = errors.New("no uses of this item left")
)

// ActiveEffect is one activation of a consumable: a modifier with a fixed
// number of applications left. Repeat activations stack as independent
// entries and are never merged.
type ActiveEffect struct {
	ItemID        ItemID     `json:"itemId"`
	Kind          EffectKind `json:"effect"`
	RemainingUses int        `json:"remainingUses"`
	Value         int        `json:"value"`
}

// Inventory holds everything the user owns: permanent items, consumable
// counts, stacked active effects, and the banked break minutes.
type Inventory struct {
	OwnedItems      []ItemID       `json:"ownedItems"`
	ConsumableItems map[ItemID]int `json:"consumableItems"`
	ActiveEffects   []ActiveEffect `json:"activeEffects"`
	TimeBank        int            `json:"timeBank"` // minutes
}

func NewInventory() *Inventory {
	return &Inventory{ConsumableItems: make(map[ItemID]int)}
}

// Owns reports permanent ownership of a non-consumable item.
func (inv *Inventory) Owns(id ItemID) bool {
	for _, owned := range inv.OwnedItems {
		if owned == id {
			return true
		}
	}
	return false
}

// Purchase buys a catalog item, paying through spend. The debit and the
// inventory mutation are one logical transaction: if spend refuses, nothing
// changes. Buying an already-owned non-consumable fails before any debit.
func (inv *Inventory) Purchase(id ItemID, spend func(points int) bool) error {
	item, ok := ItemByID(id)
	if !ok {
		return ErrUnknownItem
	}
	if !item.Consumable && inv.Owns(id) {
		return ErrAlreadyOwned
	}
	if !spend(item.Price) {
		return ErrInsufficientPoints
	}
	if item.Consumable {
		if inv.ConsumableItems == nil {
			inv.ConsumableItems = make(map[ItemID]int)
		}
		inv.ConsumableItems[id]++
	} else {
		inv.OwnedItems = append(inv.OwnedItems, id)
	}
	return nil
}

// UseConsumable activates one unit of a consumable item: the count drops
// by one (the entry disappears at zero) and a fresh ActiveEffect with that
// item's fixed parameters is appended.
func (inv *Inventory) UseConsumable(id ItemID) error {
	item, ok := ItemByID(id)
	if !ok {
		return ErrUnknownItem
	}
	if !item.Consumable {
		return ErrNotConsumable
	}
	if inv.ConsumableItems[id] <= 0 {
		return ErrNoneLeft
	}
	effect, ok := newEffect(id, item.Effect)
	if !ok {
		return ErrNotConsumable
	}
	inv.ConsumableItems[id]--
	if inv.ConsumableItems[id] <= 0 {
		delete(inv.ConsumableItems, id)
	}
	inv.ActiveEffects = append(inv.ActiveEffects, effect)
	return nil
}

// ActiveEffectOf returns the first active effect of the given kind, or nil.
func (inv *Inventory) ActiveEffectOf(kind EffectKind) *ActiveEffect {
	for i := range inv.ActiveEffects {
		if inv.ActiveEffects[i].Kind == kind {
			return &inv.ActiveEffects[i]
		}
	}
	return nil
}

// ConsumeEffect spends one use of the first active effect created from the
// given item. Effects out of uses are pruned. Callers must invoke this at
// most once per qualifying completion event.
func (inv *Inventory) ConsumeEffect(id ItemID) {
	for i := range inv.ActiveEffects {
		if inv.ActiveEffects[i].ItemID == id {
			inv.ActiveEffects[i].RemainingUses--
			break
		}
	}
	kept := inv.ActiveEffects[:0]
	for _, e := range inv.ActiveEffects {
		if e.RemainingUses > 0 {
			kept = append(kept, e)
		}
	}
	inv.ActiveEffects = kept
}

// AddToTimeBank banks break minutes for later.
func (inv *Inventory) AddToTimeBank(minutes int) {
	if minutes > 0 {
		inv.TimeBank += minutes
	}
}

// UseTimeBank draws minutes from the bank iff the balance covers them,
// the same refuse-don't-clamp gate as Ledger.Spend.
func (inv *Inventory) UseTimeBank(minutes int) bool {
	if minutes <= 0 || inv.TimeBank < minutes {
		return false
	}
	inv.TimeBank -= minutes
	return true
}

// HasItem reports whether the item is usable right now: a positive count
// for consumables, set membership for permanent items.
func (inv *Inventory) HasItem(id ItemID) bool {
	item, ok := ItemByID(id)
	if !ok {
		return false
	}
	if item.Consumable {
		return inv.ConsumableItems[id] > 0
	}
	return inv.Owns(id)
}

// ItemQuantity returns the consumable count, zero when absent.
func (inv *Inventory) ItemQuantity(id ItemID) int {
	return inv.ConsumableItems[id]
}
