package testutil

// Sample NS API responses. Times are in March (CET, +0100).

// SampleStationsResponse is a trimmed stations list.
const SampleStationsResponse = `{
	"payload": [
		{
			"code": "UT",
			"UICCode": "8400621",
			"stationType": "MEGA_STATION",
			"land": "NL",
			"lat": 52.0894,
			"lng": 5.1100,
			"namen": {"lang": "Utrecht Centraal", "middel": "Utrecht C.", "kort": "Utrecht C"},
			"sporen": [{"spoorNummer": "5"}, {"spoorNummer": "7"}, {"spoorNummer": "18"}]
		},
		{
			"code": "ASD",
			"UICCode": "8400058",
			"stationType": "MEGA_STATION",
			"land": "NL",
			"lat": 52.3789,
			"lng": 4.9003,
			"namen": {"lang": "Amsterdam Centraal", "middel": "Amsterdam C.", "kort": "Amsterdm C"},
			"sporen": [{"spoorNummer": "4"}]
		},
		{
			"code": "ASA",
			"UICCode": "8400057",
			"stationType": "KNOOPPUNT_INTERCITY_STATION",
			"land": "NL",
			"lat": 52.3467,
			"lng": 4.9177,
			"namen": {"lang": "Amsterdam Amstel", "middel": "Amstel", "kort": "Amstel"},
			"sporen": [{"spoorNummer": "2"}]
		},
		{
			"code": "UTO",
			"UICCode": "8400623",
			"stationType": "STOPTREIN_STATION",
			"land": "NL",
			"lat": 52.1113,
			"lng": 5.1336,
			"namen": {"lang": "Utrecht Overvecht", "middel": "Overvecht", "kort": "Overvecht"},
			"sporen": []
		},
		{
			"code": "RTD",
			"UICCode": "8400530",
			"stationType": "MEGA_STATION",
			"land": "NL",
			"lat": 51.9250,
			"lng": 4.4690,
			"namen": {"lang": "Rotterdam Centraal", "middel": "Rotterdam C.", "kort": "Rotterdm C"},
			"sporen": []
		}
	]
}`

// SampleDeparturesResponse is a departure board for Utrecht Centraal.
const SampleDeparturesResponse = `{
	"payload": {
		"source": "PPV",
		"departures": [
			{
				"direction": "Amsterdam Centraal",
				"name": "NS  3034",
				"plannedDateTime": "2024-03-01T14:30:00+0100",
				"actualDateTime": "2024-03-01T14:32:00+0100",
				"plannedTrack": "5",
				"actualTrack": "7",
				"product": {
					"number": "3034",
					"categoryCode": "IC",
					"shortCategoryName": "NS Intercity",
					"longCategoryName": "Intercity",
					"operatorCode": "NS",
					"operatorName": "NS",
					"type": "TRAIN"
				},
				"trainCategory": "IC",
				"cancelled": false,
				"routeStations": [{"uicCode": "8400057", "mediumName": "Amstel"}],
				"messages": [],
				"departureStatus": "INCOMING"
			},
			{
				"direction": "Rotterdam Centraal",
				"name": "NS  7436",
				"plannedDateTime": "2024-03-01T14:41:00+0100",
				"plannedTrack": "18",
				"product": {
					"number": "7436",
					"categoryCode": "SPR",
					"shortCategoryName": "NS Sprinter",
					"longCategoryName": "Sprinter",
					"operatorCode": "NS",
					"operatorName": "NS",
					"type": "TRAIN"
				},
				"trainCategory": "SPR",
				"cancelled": true,
				"routeStations": [{"uicCode": "8400319", "mediumName": "Gouda"}, {"uicCode": "8400507", "mediumName": "R'dam Alexander"}],
				"messages": [{"message": "Rijdt niet", "style": "WARNING"}],
				"departureStatus": "CANCELLED"
			}
		]
	}
}`

// SampleArrivalsResponse is an arrival board for Utrecht Centraal.
const SampleArrivalsResponse = `{
	"payload": {
		"source": "PPV",
		"arrivals": [
			{
				"origin": "Den Helder",
				"name": "NS  3030",
				"plannedDateTime": "2024-03-01T14:20:00+0100",
				"actualDateTime": "2024-03-01T14:20:00+0100",
				"plannedTrack": "18",
				"product": {
					"number": "3030",
					"categoryCode": "IC",
					"longCategoryName": "Intercity",
					"operatorCode": "NS",
					"operatorName": "NS",
					"type": "TRAIN"
				},
				"trainCategory": "IC",
				"cancelled": false,
				"messages": [],
				"arrivalStatus": "ON_STATION"
			}
		]
	}
}`

// SampleTripsResponse holds a direct trip and one with a transfer.
const SampleTripsResponse = `{
	"trips": [
		{
			"uid": "trip-1",
			"plannedDurationInMinutes": 27,
			"actualDurationInMinutes": 29,
			"transfers": 0,
			"status": "NORMAL",
			"crowdForecast": "MEDIUM",
			"legs": [
				{
					"name": "NS 3034",
					"direction": "Amsterdam Centraal",
					"cancelled": false,
					"product": {"number": "3034", "categoryCode": "IC", "operatorCode": "NS", "operatorName": "NS"},
					"origin": {
						"name": "Utrecht Centraal",
						"uicCode": "8400621",
						"plannedDateTime": "2024-03-01T14:30:00+0100",
						"actualDateTime": "2024-03-01T14:32:00+0100",
						"plannedTrack": "5",
						"actualTrack": "7"
					},
					"destination": {
						"name": "Amsterdam Centraal",
						"uicCode": "8400058",
						"plannedDateTime": "2024-03-01T14:57:00+0100",
						"actualDateTime": "2024-03-01T14:59:00+0100",
						"plannedTrack": "4"
					},
					"journeyDetailRef": "HARP_S2-3034",
					"stops": [{"uicCode": "8400621"}, {"uicCode": "8400057"}, {"uicCode": "8400058"}]
				}
			]
		},
		{
			"uid": "trip-2",
			"plannedDurationInMinutes": 44,
			"transfers": 1,
			"status": "NORMAL",
			"legs": [
				{
					"name": "NS 7436",
					"direction": "Breukelen",
					"product": {"number": "7436", "categoryCode": "SPR", "operatorCode": "NS"},
					"origin": {"name": "Utrecht Centraal", "uicCode": "8400621", "plannedDateTime": "2024-03-01T14:41:00+0100", "plannedTrack": "18"},
					"destination": {"name": "Breukelen", "uicCode": "8400134", "plannedDateTime": "2024-03-01T14:49:00+0100", "plannedTrack": "1"},
					"stops": [{"uicCode": "8400621"}, {"uicCode": "8400134"}]
				},
				{
					"name": "NS 5736",
					"direction": "Amsterdam Centraal",
					"product": {"number": "5736", "categoryCode": "SPR", "operatorCode": "NS"},
					"origin": {"name": "Breukelen", "uicCode": "8400134", "plannedDateTime": "2024-03-01T14:55:00+0100", "plannedTrack": "2"},
					"destination": {"name": "Amsterdam Centraal", "uicCode": "8400058", "plannedDateTime": "2024-03-01T15:25:00+0100", "plannedTrack": "10"},
					"stops": [{"uicCode": "8400134"}, {"uicCode": "8400080"}, {"uicCode": "8400059"}, {"uicCode": "8400058"}]
				}
			]
		}
	]
}`

// SampleJourneyResponse is the run of IC 3034 from Utrecht to Amsterdam.
const SampleJourneyResponse = `{
	"payload": {
		"productNumbers": ["3034"],
		"stops": [
			{
				"id": "8400621_0",
				"stop": {"name": "Utrecht Centraal", "lat": 52.0894, "lng": 5.1100, "uicCode": "8400621", "countryCode": "NL"},
				"status": "ORIGIN",
				"arrivals": [],
				"departures": [
					{
						"product": {"number": "3034", "categoryCode": "IC", "operatorCode": "NS", "operatorName": "NS"},
						"destination": {"name": "Amsterdam Centraal"},
						"plannedTime": "2024-03-01T14:30:00+0100",
						"actualTime": "2024-03-01T14:32:00+0100",
						"plannedTrack": "5",
						"actualTrack": "7",
						"cancelled": false,
						"delayInSeconds": 120
					}
				],
				"actualStock": {
					"trainType": "VIRM",
					"numberOfSeats": 571,
					"numberOfParts": 1,
					"trainParts": [{"stockIdentifier": "9547", "facilities": ["TOILET", "WIFI"], "image": {"uri": "https://example.invalid/virm.png"}}]
				}
			},
			{
				"id": "8400057_0",
				"stop": {"name": "Amsterdam Amstel", "lat": 52.3467, "lng": 4.9177, "uicCode": "8400057", "countryCode": "NL"},
				"status": "STOP",
				"arrivals": [
					{"plannedTime": "2024-03-01T14:49:00+0100", "actualTime": "2024-03-01T14:51:00+0100", "plannedTrack": "2", "cancelled": false}
				],
				"departures": [
					{
						"product": {"number": "3034", "categoryCode": "IC", "operatorCode": "NS"},
						"destination": {"name": "Amsterdam Centraal"},
						"plannedTime": "2024-03-01T14:50:00+0100",
						"actualTime": "2024-03-01T14:52:00+0100",
						"plannedTrack": "2"
					}
				]
			},
			{
				"id": "8400058_0",
				"stop": {"name": "Amsterdam Centraal", "lat": 52.3789, "lng": 4.9003, "uicCode": "8400058", "countryCode": "NL"},
				"status": "DESTINATION",
				"arrivals": [
					{"plannedTime": "2024-03-01T14:57:00+0100", "actualTime": "2024-03-01T14:59:00+0100", "plannedTrack": "4", "actualTrack": "4"}
				],
				"departures": []
			}
		],
		"notes": [{"text": "Stiltecoupé aanwezig", "noteType": "ATTRIBUTE"}]
	}
}`

// SampleDisruptionsResponse has one active disruption and one maintenance.
const SampleDisruptionsResponse = `[
	{
		"id": "7001234",
		"type": "DISRUPTION",
		"title": "Utrecht Centraal - Amsterdam Centraal",
		"isActive": true,
		"start": "2024-03-01T13:00:00+0100",
		"end": "2024-03-01T17:00:00+0100",
		"phase": {"label": "Fase 2"},
		"expectedDuration": {"description": "Tot 17:00"},
		"timespans": [
			{"situation": {"label": "er rijden minder treinen"}, "cause": {"label": "seinstoring"}}
		],
		"publicationSections": [
			{"section": {"stations": [
				{"uicCode": "8400621", "stationCode": "UT", "name": "Utrecht Centraal"},
				{"uicCode": "8400058", "stationCode": "ASD", "name": "Amsterdam Centraal"}
			]}},
			{"section": {"stations": [
				{"uicCode": "8400058", "stationCode": "ASD", "name": "Amsterdam Centraal"}
			]}}
		]
	},
	{
		"id": "m-42",
		"type": "MAINTENANCE",
		"title": "Rotterdam - Dordrecht",
		"isActive": false,
		"start": "2024-03-09T01:00:00+0100",
		"end": "2024-03-10T23:59:00+0100",
		"timespans": [{"situation": {"label": "geen treinen"}, "cause": {"label": "werkzaamheden"}}],
		"publicationSections": [
			{"section": {"stations": [{"uicCode": "8400530", "stationCode": "RTD", "name": "Rotterdam Centraal"}]}}
		]
	}
]`

// SampleVehiclesResponse is the live vehicle feed with a moving and a
// standing train.
const SampleVehiclesResponse = `{
	"payload": {
		"treinen": [
			{
				"treinNummer": 3034,
				"ritId": "3034",
				"lat": 52.2,
				"lng": 5.05,
				"snelheid": 120.5,
				"richting": 330.0,
				"horizontaleNauwkeurigheid": 3.2,
				"type": "IC",
				"bron": "KV6"
			},
			{
				"treinNummer": 7436,
				"ritId": "7436",
				"lat": 52.0894,
				"lng": 5.1100,
				"snelheid": 0,
				"richting": 0,
				"horizontaleNauwkeurigheid": 5,
				"type": "SPR",
				"bron": "KV6"
			}
		]
	}
}`

// SampleMaterialResponse is the composition of IC 3034.
const SampleMaterialResponse = `{
	"ritnummer": 3034,
	"station": "UT",
	"type": "VIRM",
	"vervoerder": "NS",
	"spoor": "7",
	"lengte": 2,
	"lengteInMeters": 262,
	"materieeldelen": [
		{
			"materieelnummer": 9547,
			"type": "VIRM-4",
			"faciliteiten": ["TOILET", "WIFI", "STILTE"],
			"afbeelding": "https://example.invalid/virm4.png",
			"zitplaatsen": {
				"staanplaatsEersteKlas": 0,
				"staanplaatsTweedeKlas": 76,
				"zitplaatsEersteKlas": 60,
				"zitplaatsTweedeKlas": 311,
				"klapstoelEersteKlas": 0,
				"klapstoelTweedeKlas": 18
			},
			"bakken": [{}, {}, {}, {}]
		},
		{
			"materieelnummer": 9401,
			"type": "VIRM-6",
			"faciliteiten": ["TOILET", "FIETS", "wifi"],
			"zitplaatsen": {
				"zitplaatsEersteKlas": 90,
				"zitplaatsTweedeKlas": 455
			},
			"bakken": [{}, {}, {}, {}, {}, {}]
		}
	]
}`

// SampleTrackResponse is track geometry from Utrecht to Amsterdam in two
// sections.
const SampleTrackResponse = `{
	"payload": {
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"properties": {"from": "ut", "to": "asa"},
				"geometry": {"type": "LineString", "coordinates": [[5.1100, 52.0894], [5.0500, 52.2000], [4.9177, 52.3467]]}
			},
			{
				"type": "Feature",
				"properties": {"from": "asa", "to": "asd"},
				"geometry": {"type": "LineString", "coordinates": [[4.9177, 52.3467], [4.9003, 52.3789]]}
			},
			{
				"type": "Feature",
				"properties": {"name": "depot"},
				"geometry": {"type": "Point", "coordinates": [5.0, 52.0]}
			}
		]
	}
}`

// SampleEmptyResponse is an empty JSON object.
const SampleEmptyResponse = `{}`

// SampleErrorResponse is the body NS returns with a 4xx status.
const SampleErrorResponse = `{
	"code": 404,
	"message": "Resource not found"
}`
