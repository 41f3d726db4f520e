package classify

import "strings"

// appleMACPrefixes is a best-effort table of MAC prefixes assigned to Apple.
// Most entries cover the first two octets; a handful of Apple allocations are
// dense enough that the whole first octet is listed in applePrefixOctets.
// Lookups are constant time on the normalized prefix.
var applePrefixOctets = map[string]struct{}{
	"AC": {},
}

var appleMACPrefixes = map[string]struct{}{
	"00:C6": {}, "00:CD": {}, "10:40": {}, "10:93": {}, "14:10": {}, "14:20": {}, "18:34": {}, "18:65": {},
	"18:F6": {}, "1C:36": {}, "1C:91": {}, "20:78": {}, "24:A0": {}, "24:F0": {}, "28:37": {}, "28:6A": {},
	"28:CF": {}, "28:E0": {}, "28:E7": {}, "34:08": {}, "34:12": {}, "34:15": {}, "34:AB": {}, "38:0F": {},
	"38:48": {}, "3C:07": {}, "3C:D0": {}, "40:30": {}, "40:4D": {}, "40:9C": {}, "40:A6": {}, "40:D3": {},
	"44:00": {}, "44:2A": {}, "44:D1": {}, "48:3B": {}, "48:43": {}, "48:74": {}, "4C:32": {}, "4C:57": {},
	"4C:74": {}, "4C:B1": {}, "50:32": {}, "50:EA": {}, "54:26": {}, "54:33": {}, "54:4E": {}, "54:99": {},
	"58:40": {}, "58:55": {}, "58:7F": {}, "5C:59": {}, "5C:95": {}, "5C:96": {}, "5C:97": {}, "5C:F5": {},
	"5C:F7": {}, "5C:F8": {}, "60:33": {}, "60:69": {}, "60:8C": {}, "60:92": {}, "60:9A": {}, "60:A3": {},
	"60:C5": {}, "60:F4": {}, "60:FA": {}, "60:FB": {}, "64:20": {}, "64:76": {}, "64:9A": {}, "64:A3": {},
	"64:B0": {}, "64:B9": {}, "64:E6": {}, "68:09": {}, "68:64": {}, "68:96": {}, "68:9C": {}, "68:A8": {},
	"68:AB": {}, "68:AE": {}, "68:D9": {}, "68:FB": {}, "6C:19": {}, "6C:3E": {}, "6C:70": {}, "6C:72": {},
	"6C:8D": {}, "6C:94": {}, "6C:96": {}, "6C:AB": {}, "70:14": {}, "70:3E": {}, "70:48": {}, "70:56": {},
	"70:73": {}, "70:A2": {}, "70:CD": {}, "70:DE": {}, "70:E7": {}, "70:EC": {}, "74:1B": {}, "74:81": {},
	"74:8D": {}, "74:E1": {}, "74:E2": {}, "78:31": {}, "78:32": {}, "78:6C": {}, "78:7B": {}, "78:88": {},
	"78:9F": {}, "78:A3": {}, "78:CA": {}, "7C:01": {}, "7C:04": {}, "7C:11": {}, "7C:50": {}, "7C:6D": {},
	"7C:9A": {}, "7C:FA": {}, "80:00": {}, "80:49": {}, "80:82": {}, "80:92": {}, "80:B0": {}, "80:E6": {},
	"84:29": {}, "84:38": {}, "84:41": {}, "84:78": {}, "84:85": {}, "84:89": {}, "84:A1": {}, "84:B1": {},
	"84:FC": {}, "88:19": {}, "88:1F": {}, "88:53": {}, "88:66": {}, "88:C6": {}, "8C:00": {}, "8C:29": {},
	"8C:2D": {}, "8C:7B": {}, "8C:8E": {}, "8C:FA": {}, "90:27": {}, "90:60": {}, "90:72": {}, "90:84": {},
	"90:8D": {}, "90:B0": {}, "90:B2": {}, "90:C1": {}, "90:FD": {}, "94:94": {}, "94:BF": {}, "94:E9": {},
	"94:F6": {}, "98:00": {}, "98:01": {}, "98:03": {}, "98:10": {}, "98:5A": {}, "98:9E": {}, "98:B8": {},
	"98:D6": {}, "98:E0": {}, "98:F0": {}, "98:F4": {}, "98:FE": {}, "9C:04": {}, "9C:20": {}, "9C:29": {},
	"9C:35": {}, "9C:4F": {}, "9C:8B": {}, "9C:F3": {}, "9C:F4": {}, "A0:99": {}, "A0:D7": {}, "A4:31": {},
	"A4:67": {}, "A4:B1": {}, "A4:B8": {}, "A4:C3": {}, "A4:D1": {}, "A4:D9": {}, "A8:20": {}, "A8:5B": {},
	"A8:5C": {}, "A8:66": {}, "A8:88": {}, "A8:8E": {}, "A8:96": {}, "A8:BB": {}, "A8:FA": {}, "AC:1F": {},
	"AC:29": {}, "AC:3C": {}, "AC:61": {}, "AC:7F": {}, "AC:87": {}, "AC:BC": {}, "AC:CF": {}, "AC:E4": {},
	"AC:FD": {}, "B0:19": {}, "B0:34": {}, "B0:48": {}, "B0:65": {}, "B0:70": {}, "B0:9F": {}, "B0:CA": {},
	"B0:EC": {}, "B4:18": {}, "B4:4B": {}, "B4:8B": {}, "B4:F0": {}, "B8:09": {}, "B8:17": {}, "B8:41": {},
	"B8:44": {}, "B8:53": {}, "B8:63": {}, "B8:78": {}, "B8:8D": {}, "B8:C1": {}, "B8:C7": {}, "B8:E8": {},
	"B8:F6": {}, "B8:FF": {}, "BC:3B": {}, "BC:4C": {}, "BC:52": {}, "BC:54": {}, "BC:67": {}, "BC:92": {},
	"BC:9F": {}, "BC:A9": {}, "BC:EC": {}, "C0:1A": {}, "C0:63": {}, "C0:84": {}, "C0:A5": {}, "C0:CC": {},
	"C0:CE": {}, "C0:D0": {}, "C0:F2": {}, "C4:2C": {}, "C4:98": {}, "C4:B3": {}, "C8:1E": {}, "C8:2A": {},
	"C8:33": {}, "C8:3C": {}, "C8:69": {}, "C8:85": {}, "C8:B5": {}, "C8:BC": {}, "C8:BF": {}, "C8:D0": {},
	"C8:E0": {}, "C8:F6": {}, "CC:08": {}, "CC:20": {}, "CC:25": {}, "CC:29": {}, "CC:44": {}, "CC:78": {},
	"CC:7E": {}, "CC:C7": {}, "D0:03": {}, "D0:23": {}, "D0:25": {}, "D0:33": {}, "D0:4B": {}, "D0:81": {},
	"D0:A6": {}, "D0:C5": {}, "D0:D2": {}, "D0:E1": {}, "D4:61": {}, "D4:9A": {}, "D4:A3": {}, "D4:DC": {},
	"D4:F4": {}, "D8:00": {}, "D8:1D": {}, "D8:30": {}, "D8:8F": {}, "D8:96": {}, "D8:9E": {}, "D8:BB": {},
	"D8:CF": {}, "D8:D1": {}, "DC:0C": {}, "DC:2B": {}, "DC:37": {}, "DC:41": {}, "DC:86": {}, "DC:A4": {},
	"DC:A9": {}, "DC:D2": {}, "DC:F7": {}, "E0:5F": {}, "E0:66": {}, "E0:B5": {}, "E0:B9": {}, "E0:C7": {},
	"E0:F5": {}, "E0:F8": {}, "E4:25": {}, "E4:2B": {}, "E4:8B": {}, "E4:9A": {}, "E4:C6": {}, "E4:CE": {},
	"E4:E0": {}, "E4:E4": {}, "E8:04": {}, "E8:06": {}, "E8:80": {}, "E8:8D": {}, "E8:B2": {}, "EC:35": {},
	"EC:85": {}, "EC:AD": {}, "F0:18": {}, "F0:79": {}, "F0:98": {}, "F0:99": {}, "F0:B0": {}, "F0:B1": {},
	"F0:C1": {}, "F0:CB": {}, "F0:D1": {}, "F0:DB": {}, "F0:DC": {}, "F0:F6": {}, "F4:0F": {}, "F4:1B": {},
	"F4:31": {}, "F4:37": {}, "F4:5C": {}, "F4:D4": {}, "F4:F1": {}, "F4:F5": {}, "F8:03": {}, "F8:1E": {},
	"F8:27": {}, "F8:38": {}, "F8:62": {}, "F8:6F": {}, "FC:25": {}, "FC:A8": {}, "FC:B6": {}, "FC:D8": {},
	"FC:E9": {}, "FC:FC": {},
}

// likelyAppleAddress reports whether the address carries an Apple-assigned
// MAC prefix. The address is expected in colon-separated form; anything too
// short to carry two octets never matches.
func likelyAppleAddress(address string) bool {
	u := strings.ToUpper(address)
	if len(u) < 5 {
		return false
	}
	if _, ok := applePrefixOctets[u[:2]]; ok && len(u) > 2 && u[2] == ':' {
		return true
	}
	_, ok := appleMACPrefixes[u[:5]]
	return ok
}
