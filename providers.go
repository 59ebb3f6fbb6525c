package main

// tileProvider is the subset of a leaflet-providers entry the generator needs.
// The browser resolves the actual tile URL through L.tileLayer.provider.
type tileProvider struct {
	MaxZoom int
}

var knownProviders = map[string]tileProvider{
	"OpenStreetMap.Mapnik": {MaxZoom: 19},
	"OpenTopoMap":          {MaxZoom: 17},
	"CartoDB.Voyager":      {MaxZoom: 20},
	"CartoDB.Positron":     {MaxZoom: 20},
	"CartoDB.DarkMatter":   {MaxZoom: 20},
	"Esri.WorldTopoMap":    {MaxZoom: 19},
	"Esri.WorldImagery":    {MaxZoom: 19},
	"Esri.WorldStreetMap":  {MaxZoom: 19},
	"USGS.USTopo":          {MaxZoom: 20},
	"USGS.USImagery":       {MaxZoom: 20},
	"USGS.USImageryTopo":   {MaxZoom: 20},
}

func lookupProvider(name string) (tileProvider, bool) {
	p, ok := knownProviders[name]
	return p, ok
}
