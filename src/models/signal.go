package models

import "fmt"

type SignalType string

// Direction mapping: a positive net spread means the ETF trades rich to spot,
// so the trade is long BTC / short ETF. A negative net spread is the inverse.
const (
	SignalLongBtcShortEtf SignalType = "LONG_BTC_SHORT_ETF"
	SignalShortBtcLongEtf SignalType = "SHORT_BTC_LONG_ETF"
	SignalHold            SignalType = "HOLD"
)

func NewSignalType(value string) (SignalType, error) {
	switch SignalType(value) {
	case SignalLongBtcShortEtf, SignalShortBtcLongEtf, SignalHold:
		return SignalType(value), nil
	default:
		return "", fmt.Errorf("NewSignalType: invalid signal %q", value)
	}
}

func (s SignalType) IsActionable() bool {
	return s == SignalLongBtcShortEtf || s == SignalShortBtcLongEtf
}
