package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	FineHandler     *FineHandler
	CouponHandler   *CouponHandler
	SpinHandler     *SpinHandler
	WheelHandler    *WheelHandler
	SettingsHandler *SettingsHandler
}
