package wireless

import "net"

// LookupVendor returns a short vendor name for the OUI of a hardware address.
// Locally administered addresses report "(local)".
func LookupVendor(mac net.HardwareAddr) string {
	if len(mac) < 3 {
		return ""
	}
	if mac[0]&0x02 != 0 {
		return "(local)"
	}
	oui := uint32(mac[0])<<16 | uint32(mac[1])<<8 | uint32(mac[2])
	return ouiNames[oui]
}

var ouiNames = map[uint32]string{
	0x001A11: "Google",
	0x0017F2: "Apple",
	0x3C22FB: "Apple",
	0x001B63: "Apple",
	0x00037F: "Atheros",
	0x001CF0: "D-Link",
	0x00146C: "Netgear",
	0x000FB5: "Netgear",
	0x001DD2: "Arris",
	0x0018E7: "Cameo",
	0x00904C: "Epigram",
	0x001018: "Broadcom",
	0x000B86: "Aruba",
	0x24DEC6: "Aruba",
	0x00176D: "Cisco",
	0x000C41: "Linksys",
	0x0014BF: "Linksys",
	0x0050F2: "Microsoft",
	0x001882: "Huawei",
	0x00E0FC: "Huawei",
	0x5C497D: "Samsung",
	0x0016DB: "Samsung",
	0x000AEB: "TP-Link",
	0x50C7BF: "TP-Link",
	0xF4F26D: "TP-Link",
	0x00156D: "Ubiquiti",
	0x0418D6: "Ubiquiti",
	0x18E829: "Ubiquiti",
	0x00259C: "Cisco-Linksys",
	0x001E58: "D-Link",
	0x000E8E: "SparkLAN",
	0x0024A5: "Buffalo",
	0x001601: "Buffalo",
	0x002275: "Belkin",
	0x08863B: "Belkin",
	0x001E2A: "Netgear",
	0x38F73D: "Amazon",
	0x7C2EBD: "Google",
	0xB4E62D: "Espressif",
	0x240AC4: "Espressif",
	0x00E04C: "Realtek",
	0x001CDF: "Belkin",
	0xE894F6: "TP-Link",
	0x0026F2: "Netgear",
	0xC83A35: "Tenda",
	0x00095B: "Netgear",
	0x002401: "D-Link",
	0x10FEED: "TP-Link",
	0x001F33: "Netgear",
	0x00265A: "D-Link",
	0x04F021: "Compex",
	0x0C8268: "TP-Link",
	0xA0F3C1: "TP-Link",
	0x9C5C8E: "ASUSTek",
	0x0015F2: "ASUSTek",
	0x001FC6: "ASUSTek",
	0x2C56DC: "ASUSTek",
	0x00E018: "ASUSTek",
	0x000D0B: "Buffalo",
	0x4C5E0C: "MikroTik",
	0x6C3B6B: "MikroTik",
	0xE48D8C: "MikroTik",
	0x00806C: "Intel",
	0x001B21: "Intel",
	0x0021D8: "Cisco",
	0x0C47C9: "Amazon",
	0x3C5AB4: "Google",
	0xF8E4FB: "Actiontec",
	0xDCA632: "Raspberry Pi",
	0xB827EB: "Raspberry Pi",
	0x001D7E: "Cisco-Linksys",
	0xAC84C6: "TP-Link",
	0x60E327: "TP-Link",
	0x74DA38: "Edimax",
	0x801F02: "Edimax",
	0x2CB05D: "Netgear",
	0xC0C1C0: "Cisco-Linksys",
	0x000625: "Linksys",
	0x0019E3: "Apple",
	0x00236C: "Apple",
	0xF0B479: "Apple",
	0x2C3033: "Netgear",
	0x00C0CA: "Alfa",
	0x001CB3: "Apple",
	0x58EF68: "Belkin",
	0x94103E: "Belkin",
	0x002369: "Cisco-Linksys",
	0xE0469A: "Netgear",
	0x8C3BAD: "Netgear",
	0x001D0F: "TP-Link",
}
