package enum

// ── Group A: State machine (enum type in DB) ──

const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusDone       = "DONE"
	OrderStatusCancelled  = "CANCELLED"
)

// ── Group B: Catalog codes (enum type in DB) ──

const (
	CategoryVanilla      = "VANILLA"
	CategoryChocolate    = "CHOCOLATE"
	CategoryRedVelvet    = "RED_VELVET"
	CategoryCoconut      = "COCONUT"
	CategoryThaiTea      = "THAI_TEA"
	CategoryCheeseLava   = "CHEESE_LAVA"
	CategoryRainbowCrepe = "RAINBOW_CREPE"
)

const (
	SizeSixInch      = "SIX_INCH"
	SizeSevenInch    = "SEVEN_INCH"
	SizeEightInch    = "EIGHT_INCH"
	SizeNineInch     = "NINE_INCH"
	SizeTenInch      = "TEN_INCH"
	SizeTwelveInch   = "TWELVE_INCH"
	SizeFourteenInch = "FOURTEEN_INCH"
)

// ── Group C: Extras (free text[] in DB, filtered in code) ──

const (
	ExtraDolls        = "dolls"
	ExtraToppings     = "toppings"
	ExtraFruits       = "fruits"
	ExtraMoneyPulling = "money_pulling"
)

// ── Dashboard pseudo-values (never persisted) ──

const (
	FilterAll       = "ALL"
	DateUnscheduled = "UNSCHEDULED"
)

// ── Order events ──

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)
