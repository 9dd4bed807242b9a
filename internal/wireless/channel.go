package wireless

// FreqToChannel converts a center frequency in MHz to an IEEE 802.11 channel
// number. It returns 0 for frequencies outside the known bands.
func FreqToChannel(freq int) int {
	switch {
	case freq == 2484:
		return 14
	case freq >= 2412 && freq < 2484:
		return (freq - 2407) / 5
	case freq >= 4910 && freq <= 4980:
		return (freq - 4000) / 5
	case freq >= 5000 && freq < 5925:
		return (freq - 5000) / 5
	case freq == 5935:
		return 2
	case freq > 5950 && freq <= 7115:
		return (freq - 5950) / 5
	case freq >= 58320 && freq <= 70200:
		return (freq - 56160) / 2160
	default:
		return 0
	}
}

// BandLabel returns a short band label ("2.4G", "5G", "6G", "60G" or "").
func BandLabel(freq int) string {
	switch {
	case freq >= 58320:
		return "60G"
	case freq > 5925:
		return "6G"
	case freq >= 5000:
		return "5G"
	case freq >= 2400:
		return "2.4G"
	default:
		return ""
	}
}
