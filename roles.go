package controltower

// RoleCode is the closed set of role tags the backend attaches to an
// identity. Roles only filter which navigation sections a client renders;
// they are not a security boundary — the backend enforces authorization on
// every request regardless of what the client chooses to show.
type RoleCode string

const (
	// RoleAdministrator is an exported constant or variable used by the session guard.
	RoleAdministrator RoleCode = "administrator"
	// RoleOperationsManager is an exported constant or variable used by the session guard.
	RoleOperationsManager RoleCode = "operations-manager"
	// RoleVendorUser is an exported constant or variable used by the session guard.
	RoleVendorUser RoleCode = "vendor-user"
	// RoleAnalyst is an exported constant or variable used by the session guard.
	RoleAnalyst RoleCode = "analyst"
)

// NavSection identifies one top-level dashboard surface.
type NavSection string

const (
	// NavOverview is an exported constant or variable used by the session guard.
	NavOverview NavSection = "overview"
	// NavShipments is an exported constant or variable used by the session guard.
	NavShipments NavSection = "shipments"
	// NavVendors is an exported constant or variable used by the session guard.
	NavVendors NavSection = "vendors"
	// NavDocuments is an exported constant or variable used by the session guard.
	NavDocuments NavSection = "documents"
	// NavAnalytics is an exported constant or variable used by the session guard.
	NavAnalytics NavSection = "analytics"
	// NavAdministration is an exported constant or variable used by the session guard.
	NavAdministration NavSection = "administration"
)

var navByRole = map[RoleCode][]NavSection{
	RoleAdministrator: {
		NavOverview, NavShipments, NavVendors, NavDocuments, NavAnalytics, NavAdministration,
	},
	RoleOperationsManager: {
		NavOverview, NavShipments, NavVendors, NavDocuments, NavAnalytics,
	},
	RoleVendorUser: {
		NavOverview, NavShipments, NavDocuments,
	},
	RoleAnalyst: {
		NavOverview, NavAnalytics,
	},
}

// KnownRole reports whether code belongs to the closed role set.
func KnownRole(code RoleCode) bool {
	_, ok := navByRole[code]
	return ok
}

// VisibleSections returns the navigation sections a role may render, in
// display order. Unknown roles see only the overview.
func VisibleSections(code RoleCode) []NavSection {
	sections, ok := navByRole[code]
	if !ok {
		return []NavSection{NavOverview}
	}

	out := make([]NavSection, len(sections))
	copy(out, sections)
	return out
}
