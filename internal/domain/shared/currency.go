package shared

// CurrencySEK is the currency all fees are denominated in, whole kronor.
const CurrencySEK = "SEK"
