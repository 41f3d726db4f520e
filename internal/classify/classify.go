package classify

import "strings"

// AppleCompanyID is Apple's Bluetooth SIG company identifier.
const AppleCompanyID = 76

// Attributes is everything the classifier may consider about an advertised
// device. Any field may be zero; classification never fails, it only
// degrades to a less specific label.
type Attributes struct {
	Address          string
	LocalName        string
	ManufacturerID   uint16
	HasManufacturer  bool
	ManufacturerData []byte
	ServiceUUIDs     []string
}

// appleDeviceTypes maps the first byte of Apple manufacturer data to a
// device type, following the Continuity protocol type codes.
var appleDeviceTypes = map[byte]string{
	0x01: "Apple AirPods",
	0x02: "Apple Pencil",
	0x03: "Apple Watch",
	0x05: "Apple MacBook",
	0x06: "Apple iPhone",
	0x07: "Apple iPad",
	0x09: "Apple HomePod",
	0x0A: "Apple TV",
	0x0B: "Apple AirPods Pro",
	0x0C: "Apple Beats Headphones",
	0x0F: "Apple AirPods Max",
	0x10: "Apple AirTag",
}

// vendorLabels covers the manufacturer IDs that get a named label on their
// own. Any other advertised ID falls back to a generic "Device".
var vendorLabels = map[uint16]string{
	6:   "Microsoft Device",
	224: "Google Device",
	117: "Samsung Device",
}

// serviceRules map well-known 16-bit service UUID fragments to labels.
// Scan order is fixed; the first rule whose fragment appears in any
// advertised service identifier wins.
var serviceRules = []struct {
	fragment string
	label    string
}{
	{"1800", "Generic BLE Device"},          // Generic Access
	{"180f", "Battery-powered Device"},      // Battery Service
	{"180a", "BLE Device"},                  // Device Information
	{"1812", "HID Device (Keyboard/Mouse)"}, // HID Service
	{"1802", "Alert Device"},                // Immediate Alert
	{"1803", "Proximity Device"},            // Link Loss
}

// Label classifies a device from its advertisement attributes. Rules are
// tried in a fixed priority order and the first match wins:
// advertised local name, Apple manufacturer data, known vendor IDs,
// well-known service UUIDs, Apple MAC prefix, and finally "Unknown Device".
func Label(a Attributes) string {
	if name := strings.TrimSpace(a.LocalName); name != "" && !isAddressName(name, a.Address) {
		return name
	}

	if a.HasManufacturer {
		if a.ManufacturerID == AppleCompanyID {
			return appleDeviceType(a.ManufacturerData)
		}
		if label, ok := vendorLabels[a.ManufacturerID]; ok {
			return label
		}
		return "Device"
	}

	for _, rule := range serviceRules {
		for _, uuid := range a.ServiceUUIDs {
			if strings.Contains(strings.ToLower(uuid), rule.fragment) {
				return rule.label
			}
		}
	}

	if likelyAppleAddress(a.Address) {
		return "Likely Apple Device"
	}

	return "Unknown Device"
}

// appleDeviceType decodes the leading type byte of Apple manufacturer data.
// Payloads shorter than two bytes carry no usable type code, so they and any
// unmapped byte degrade to the generic label.
func appleDeviceType(data []byte) string {
	if len(data) < 2 {
		return "Apple Device"
	}
	if label, ok := appleDeviceTypes[data[0]]; ok {
		return label
	}
	return "Apple Device"
}

// isAddressName reports whether a local name is just the MAC address
// reformatted. Separators are stripped from both sides and the comparison is
// case-insensitive, so "AA-BB-CC-DD-EE-FF" matches "AA:BB:CC:DD:EE:FF".
func isAddressName(name, address string) bool {
	stripped := strings.NewReplacer(":", "", "-", "", "_", "")
	return strings.EqualFold(stripped.Replace(name), stripped.Replace(address))
}
