package utils

// -----------------------------------------------------------------------------

// DefaultMIC is used for symbols without a market suffix (US listings).
const DefaultMIC = "xnys"

// suffixMIC maps Yahoo market suffixes to ISO 10383 MIC codes understood
// by scmhub/calendar.
var suffixMIC = map[string]string{
	"TW":  "xtai",
	"TWO": "xtai", // TPEx follows the TWSE holiday calendar
	"L":   "xlon",
	"PA":  "xpar",
	"DE":  "xfra",
	"AS":  "xams",
	"BR":  "xbru",
	"MI":  "xmil",
	"MC":  "xmad",
	"ST":  "xsto",
	"CO":  "xcse",
	"HE":  "xhel",
	"VI":  "xwbo",
	"SW":  "xswx",
	"TO":  "xtse",
	"V":   "xtsx",
	"T":   "xtks",
	"HK":  "xhkg",
	"AX":  "xasx",
	"KS":  "xkrx",
	"SS":  "xshg",
	"SZ":  "xshe",
}

// -----------------------------------------------------------------------------

// session is a regular trading session in exchange local time.
type session struct {
	Timezone    string
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// fallbackSessions is used when scmhub/calendar has no entry for a MIC.
var fallbackSessions = map[string]session{
	"xtai": {Timezone: "Asia/Taipei", OpenHour: 9, OpenMinute: 0, CloseHour: 13, CloseMinute: 30},
	"xnys": {Timezone: "America/New_York", OpenHour: 9, OpenMinute: 30, CloseHour: 16, CloseMinute: 0},
}
