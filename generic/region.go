/*
region.go - Region registration and lookup

PURPOSE:
  Provides a registry for domain packages to register the regions their
  rules apply to. This lets parsers (JSON rule sets, HTTP input, CLI flags)
  turn a code like "NSW" back into the domain's concrete type while the
  generic package stays ignorant of which regions exist.

HOW IT WORKS:
  1. Domain packages define their Region implementations
  2. Domain packages register them in init()
  3. Parsers use LookupRegion to reconstruct types

USAGE:
  // In housing/jurisdiction.go
  func init() {
      generic.RegisterRegion(NSW)
  }

  // In factory
  region := generic.LookupRegion("NSW") // returns housing.NSW

SEE ALSO:
  - housing/jurisdiction.go: Australian state/territory implementation
*/
package generic

import (
	"sort"
	"strings"
	"sync"
)

// Region identifies the jurisdiction a rule applies to.
type Region interface {
	// RegionCode returns the short unique code ("NSW").
	RegionCode() string

	// RegionName returns the display name ("New South Wales").
	RegionName() string
}

// =============================================================================
// REGION REGISTRY
// =============================================================================

var (
	regionRegistry = make(map[string]Region)
	registryMu     sync.RWMutex
)

// RegisterRegion adds a region to the global registry.
// Call this from domain package init() functions.
func RegisterRegion(r Region) {
	registryMu.Lock()
	defer registryMu.Unlock()
	regionRegistry[r.RegionCode()] = r
}

// LookupRegion finds a registered region by code. Lookup is
// case-insensitive on the code and ignores surrounding whitespace.
// Returns nil if not found.
func LookupRegion(code string) Region {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return regionRegistry[strings.ToUpper(strings.TrimSpace(code))]
}

// ListRegions returns all registered regions sorted by code.
func ListRegions() []Region {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Region, 0, len(regionRegistry))
	for _, r := range regionRegistry {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RegionCode() < result[j].RegionCode()
	})
	return result
}
