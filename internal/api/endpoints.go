package api

const (
	// BaseURL is the NS API gateway
	BaseURL = "https://gateway.apiportal.ns.nl"

	// SubscriptionKeyHeader carries the NS API portal key
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"

	// EndpointStations lists all stations
	EndpointStations = "/reisinformatie-api/api/v2/stations"

	// EndpointDepartures returns departures at a station
	// Params: station (code or UIC), dateTime, maxJourneys
	EndpointDepartures = "/reisinformatie-api/api/v2/departures"

	// EndpointArrivals returns arrivals at a station
	// Params: station (code or UIC), dateTime, maxJourneys
	EndpointArrivals = "/reisinformatie-api/api/v2/arrivals"

	// EndpointTrips plans trips between two stations
	// Params: fromStation, toStation, viaStation, dateTime, searchForArrival
	EndpointTrips = "/reisinformatie-api/api/v3/trips"

	// EndpointJourney returns the stops of one train
	// Params: train, dateTime
	EndpointJourney = "/reisinformatie-api/api/v2/journey"

	// EndpointDisruptions lists disruptions and maintenance
	// Params: isActive, type
	EndpointDisruptions = "/reisinformatie-api/api/v3/disruptions"

	// EndpointVehicles returns live positions of running trains
	// Params: treinNummer (optional)
	EndpointVehicles = "/virtual-train-api/api/vehicle"

	// EndpointMaterial returns the composition of a train; the train
	// number is appended to the path
	EndpointMaterial = "/virtual-train-api/api/v1/trein/"

	// EndpointTrackMap returns the complete track map as GeoJSON
	EndpointTrackMap = "/Spoorkaart-API/api/v1/spoorkaart"

	// EndpointTrackRoute returns track geometry along a list of stations
	// Params: stations (comma separated codes)
	EndpointTrackRoute = "/Spoorkaart-API/api/v1/traject"
)
