package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// GetVehicles fetches the live positions of all running trains. Positions
// are never served from the response cache.
func (c *Client) GetVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return c.getVehicles(ctx, c.baseURL+EndpointVehicles)
}

// GetVehicle fetches the live position of one train. A train that is not
// running yields a 404 APIError.
func (c *Client) GetVehicle(ctx context.Context, train string) (*models.Vehicle, error) {
	train = strings.TrimSpace(train)
	if err := validateTrainNumber(train); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("treinNummer", train)
	vehicles, err := c.getVehicles(ctx, c.baseURL+EndpointVehicles+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	for i := range vehicles {
		if vehicles[i].TrainNumber == train {
			return &vehicles[i], nil
		}
	}
	return nil, NewAPIErrorWithMessage(http.StatusNotFound, EndpointVehicles,
		fmt.Sprintf("train %s is not running", train))
}

func (c *Client) getVehicles(ctx context.Context, reqURL string) ([]models.Vehicle, error) {
	body, err := c.doRequest(ctx, reqURL, false)
	if err != nil {
		return nil, err
	}

	var resp models.VehiclesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse vehicles response: %w", err)
	}

	vehicles := make([]models.Vehicle, 0, len(resp.Payload.Treinen))
	for _, v := range resp.Payload.Treinen {
		vehicles = append(vehicles, *v.ToVehicle())
	}
	return vehicles, nil
}

// GetTrackGeometry fetches the track polylines connecting the given
// stations in order. Without stations the complete track map is returned.
func (c *Client) GetTrackGeometry(ctx context.Context, stations ...string) (*models.TrackGeometry, error) {
	reqURL := c.baseURL + EndpointTrackMap
	if len(stations) > 0 {
		if len(stations) < 2 {
			return nil, ErrInvalidValue("stations", strings.Join(stations, ","))
		}
		codes := make([]string, 0, len(stations))
		for _, s := range stations {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				return nil, ErrMissingField("stations")
			}
			codes = append(codes, s)
		}
		params := url.Values{}
		params.Set("stations", strings.Join(codes, ","))
		reqURL = c.baseURL + EndpointTrackRoute + "?" + params.Encode()
	}

	body, err := c.doRequest(ctx, reqURL, true)
	if err != nil {
		return nil, err
	}

	var resp models.TrackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse track response: %w", err)
	}
	return resp.ToTrackGeometry(), nil
}

// GetJourneyTrack fetches the track geometry along a journey. Stops are
// mapped from UIC codes to station codes through the station list; stops
// abroad that NS does not know are skipped.
func (c *Client) GetJourneyTrack(ctx context.Context, j *models.Journey) (*models.TrackGeometry, error) {
	all, err := c.AllStations(ctx)
	if err != nil {
		return nil, err
	}
	byUIC := make(map[string]string, len(all))
	for _, s := range all {
		byUIC[s.UICCode] = s.Code
	}

	var codes []string
	for _, uic := range j.StationCodes() {
		if code, ok := byUIC[uic]; ok {
			codes = append(codes, code)
		}
	}
	if len(codes) < 2 {
		return nil, ErrNoResults
	}
	return c.GetTrackGeometry(ctx, codes...)
}
