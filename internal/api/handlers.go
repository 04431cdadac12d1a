package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/geohash"
	"github.com/gorilla/mux"
)

// ErrBadParameter is returned when a query parameter is missing or malformed.
var ErrBadParameter = errors.New("bad parameter")

type hashResponse struct {
	Geohash string `json:"geohash"`
}

type hashIntResponse struct {
	Geohash uint64 `json:"geohash"`
	Bits    uint   `json:"bits"`
}

type decodeResponse struct {
	geohash.Cell
	BBox geohash.Box `json:"bbox"`
}

type neighborsResponse struct {
	Neighbors []string `json:"neighbors"`
}

type neighborsIntResponse struct {
	Neighbors []uint64 `json:"neighbors"`
	Bits      uint     `json:"bits"`
}

type bboxesResponse struct {
	Geohashes []string `json:"geohashes"`
}

type bboxesIntResponse struct {
	Geohashes []uint64 `json:"geohashes"`
	Bits      uint     `json:"bits"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Encode handles GET /encode?lat=&lon=&precision=. precision defaults to 9 and
// accepts "auto", which derives the length from the digits of lat and lon as sent.
func (h *Handler) Encode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	chars := geohash.DefaultPrecision
	switch raw := query.Get("precision"); raw {
	case "":
	case "auto":
		chars = geohash.EncodeAuto
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: precision %q", ErrBadParameter, raw))
			return
		}
		chars = n
	}

	hash, err := geohash.EncodeDecimal(query.Get("lat"), query.Get("lon"), chars)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, hashResponse{Geohash: hash})
}

// EncodeInt handles GET /encode_int?lat=&lon=&bits=.
func (h *Handler) EncodeInt(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoordinates(r, "lat", "lon")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bits, err := parseBits(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	hash, err := geohash.EncodeInt(lat, lon, bits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, hashIntResponse{Geohash: hash, Bits: bits})
}

// Decode handles GET /decode/{hash}.
func (h *Handler) Decode(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]

	cell, err := geohash.Decode(hash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	box, err := geohash.DecodeBBox(hash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, decodeResponse{Cell: cell, BBox: box})
}

// DecodeInt handles GET /decode_int/{hash}?bits=.
func (h *Handler) DecodeInt(w http.ResponseWriter, r *http.Request) {
	hash, bits, err := parseIntHash(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cell, err := geohash.DecodeInt(hash, bits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	box, err := geohash.DecodeBBoxInt(hash, bits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, decodeResponse{Cell: cell, BBox: box})
}

// Neighbor handles GET /neighbor/{hash}?lat=&lon=, where lat and lon are cell steps.
func (h *Handler) Neighbor(w http.ResponseWriter, r *http.Request) {
	dir, err := parseDirection(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	hash, err := geohash.Neighbor(mux.Vars(r)["hash"], dir)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, hashResponse{Geohash: hash})
}

// NeighborInt handles GET /neighbor_int/{hash}?lat=&lon=&bits=.
func (h *Handler) NeighborInt(w http.ResponseWriter, r *http.Request) {
	hash, bits, err := parseIntHash(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	dir, err := parseDirection(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	neighbor, err := geohash.NeighborInt(hash, dir, bits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, hashIntResponse{Geohash: neighbor, Bits: bits})
}

// Neighbors handles GET /neighbors/{hash}.
func (h *Handler) Neighbors(w http.ResponseWriter, r *http.Request) {
	neighbors, err := geohash.Neighbors(mux.Vars(r)["hash"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, neighborsResponse{Neighbors: neighbors})
}

// NeighborsInt handles GET /neighbors_int/{hash}?bits=.
func (h *Handler) NeighborsInt(w http.ResponseWriter, r *http.Request) {
	hash, bits, err := parseIntHash(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	neighbors, err := geohash.NeighborsInt(hash, bits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, neighborsIntResponse{Neighbors: neighbors, Bits: bits})
}

// BBoxes handles GET /bboxes?min_lat=&min_lon=&max_lat=&max_lon=&precision=.
func (h *Handler) BBoxes(w http.ResponseWriter, r *http.Request) {
	box, err := parseBox(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	chars := geohash.DefaultPrecision
	if raw := r.URL.Query().Get("precision"); raw != "" {
		if chars, err = strconv.Atoi(raw); err != nil {
			h.writeError(w, r, fmt.Errorf("%w: precision %q", ErrBadParameter, raw))
			return
		}
	}

	hashes, err := geohash.BBoxes(box, chars)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, bboxesResponse{Geohashes: hashes})
}

// BBoxesInt handles GET /bboxes_int?min_lat=&min_lon=&max_lat=&max_lon=&bits=.
func (h *Handler) BBoxesInt(w http.ResponseWriter, r *http.Request) {
	box, err := parseBox(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bits, err := parseBits(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	hashes, err := geohash.BBoxesInt(box, bits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, bboxesIntResponse{Geohashes: hashes, Bits: bits})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

// writeError maps package errors to 400 and anything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	for _, known := range []error{
		ErrBadParameter,
		geohash.ErrInvalidCharacter,
		geohash.ErrInvalidInput,
		geohash.ErrOutOfRange,
		geohash.ErrInvalidPrecision,
		geohash.ErrInvalidBox,
		geohash.ErrTooManyCells,
	} {
		if errors.Is(err, known) {
			status = http.StatusBadRequest
			break
		}
	}

	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	} else {
		h.log.DebugContext(r.Context(), "Request rejected", "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func parseFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadParameter, name, raw)
	}
	return v, nil
}

func parseCoordinates(r *http.Request, latName, lonName string) (float64, float64, error) {
	lat, err := parseFloat(r, latName)
	if err != nil {
		return 0, 0, err
	}
	lon, err := parseFloat(r, lonName)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func parseBox(r *http.Request) (geohash.Box, error) {
	minLat, minLon, err := parseCoordinates(r, "min_lat", "min_lon")
	if err != nil {
		return geohash.Box{}, err
	}
	maxLat, maxLon, err := parseCoordinates(r, "max_lat", "max_lon")
	if err != nil {
		return geohash.Box{}, err
	}
	return geohash.Box{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}, nil
}

func parseBits(r *http.Request) (uint, error) {
	raw := r.URL.Query().Get("bits")
	if raw == "" {
		return geohash.DefaultBitsPrecision, nil
	}
	bits, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: bits %q", ErrBadParameter, raw)
	}
	return uint(bits), nil
}

func parseIntHash(r *http.Request) (uint64, uint, error) {
	raw := mux.Vars(r)["hash"]
	hash, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hash %q", ErrBadParameter, raw)
	}
	bits, err := parseBits(r)
	if err != nil {
		return 0, 0, err
	}
	return hash, bits, nil
}

func parseDirection(r *http.Request) (geohash.Direction, error) {
	var dir geohash.Direction
	for _, axis := range []struct {
		name string
		dst  *int
	}{{"lat", &dir.Lat}, {"lon", &dir.Lon}} {
		raw := r.URL.Query().Get(axis.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return geohash.Direction{}, fmt.Errorf("%w: %s step %q", ErrBadParameter, axis.name, raw)
		}
		*axis.dst = v
	}
	return dir, nil
}
