package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"cecd/cec"

	"github.com/gorilla/mux"
)

// busDevice is the slice of cec.Device the HTTP and MQTT layers use.
// Tests substitute a stub.
type busDevice interface {
	Capabilities() (cec.Capabilities, error)
	PhysicalAddress() (cec.PhysicalAddress, error)
	LogicalAddresses() (cec.LogicalAddresses, error)
	ScanBus() ([]*cec.DeviceInfo, error)
	QueryDevice(cec.LogicalAddress) (*cec.DeviceInfo, error)
	GetBusTopology() (*cec.BusTopology, error)
	GetDevicePowerStatus(cec.LogicalAddress) (cec.PowerStatus, error)
	TurnOn(cec.LogicalAddress) error
	Standby(cec.LogicalAddress) error
	SendKeypress(cec.LogicalAddress, cec.Keycode) error
	TransmitMessage(*cec.Message) (*cec.Message, error)
	OwnAddress() cec.LogicalAddress
}

// history is a bounded ring of recent bus messages.
type history struct {
	mu      sync.RWMutex
	entries []historyEntry
	max     int
}

type historyEntry struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Opcode    string    `json:"opcode,omitempty"`
	Params    []byte    `json:"params,omitempty"`
	Text      string    `json:"text"`
}

func newHistory(max int) *history {
	return &history{max: max}
}

func (h *history) add(msg *cec.Message) {
	e := historyEntry{
		Timestamp: time.Now(),
		From:      msg.From.String(),
		To:        msg.To.String(),
		Params:    msg.Params,
		Text:      msg.String(),
	}
	if msg.OpcodeSet {
		e.Opcode = fmt.Sprintf("0x%02X", uint8(msg.Opcode))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

func (h *history) recent() []historyEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]historyEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Server exposes a CEC adapter over HTTP.
type Server struct {
	dev     busDevice
	history *history
}

func NewServer(dev busDevice, hist *history) *Server {
	return &Server{dev: dev, history: hist}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/adapter", s.getAdapterHandler).Methods("GET")
	r.HandleFunc("/api/topology", s.getTopologyHandler).Methods("GET")

	r.HandleFunc("/api/devices", s.getDevicesHandler).Methods("GET")
	r.HandleFunc("/api/devices/{address}", s.getDeviceHandler).Methods("GET")

	r.HandleFunc("/api/power/on", s.powerOnHandler).Methods("POST")
	r.HandleFunc("/api/power/on/{address}", s.powerOnHandler).Methods("POST")
	r.HandleFunc("/api/power/off", s.powerOffHandler).Methods("POST")
	r.HandleFunc("/api/power/off/{address}", s.powerOffHandler).Methods("POST")
	r.HandleFunc("/api/power/status", s.getPowerStatusHandler).Methods("GET")
	r.HandleFunc("/api/power/status/{address}", s.getPowerStatusHandler).Methods("GET")

	r.HandleFunc("/api/key", s.sendKeyHandler).Methods("POST")
	r.HandleFunc("/api/command", s.rawCommandHandler).Methods("POST")

	r.HandleFunc("/api/messages", s.getMessagesHandler).Methods("GET")
	r.HandleFunc("/api/health", s.healthHandler).Methods("GET")

	return r
}

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Status:  "error",
		Message: message,
	})
}

func respondSuccess(w http.ResponseWriter, message string, data interface{}) {
	respondJSON(w, http.StatusOK, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// addressFromVars parses the optional {address} path variable, returning
// fallback when it is absent.
func addressFromVars(r *http.Request, fallback cec.LogicalAddress) (cec.LogicalAddress, error) {
	raw, ok := mux.Vars(r)["address"]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 15 {
		return 0, fmt.Errorf("invalid logical address %q", raw)
	}
	return cec.LogicalAddress(n), nil
}

// Adapter endpoints

func (s *Server) getAdapterHandler(w http.ResponseWriter, r *http.Request) {
	caps, err := s.dev.Capabilities()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pa, _ := s.dev.PhysicalAddress()
	la, _ := s.dev.LogicalAddresses()
	respondSuccess(w, "Adapter info retrieved", map[string]interface{}{
		"driver":            caps.Driver,
		"name":              caps.Name,
		"capabilities":      caps.Capabilities.String(),
		"physical_address":  pa.String(),
		"logical_addresses": la.Addresses,
		"osd_name":          la.OSDName,
		"configured":        la.Configured(),
	})
}

func (s *Server) getTopologyHandler(w http.ResponseWriter, r *http.Request) {
	topo, err := s.dev.GetBusTopology()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, "Topology retrieved", topo)
}

// Device endpoints

func (s *Server) getDevicesHandler(w http.ResponseWriter, r *http.Request) {
	devices, err := s.dev.ScanBus()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, "Devices retrieved", devices)
}

func (s *Server) getDeviceHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := addressFromVars(r, 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	info, err := s.dev.QueryDevice(addr)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondSuccess(w, "Device info retrieved", info)
}

// Power control

func (s *Server) powerOnHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := addressFromVars(r, cec.LogicalAddressTV)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.dev.TurnOn(addr); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, fmt.Sprintf("Power on command sent to device %d", addr), nil)
}

func (s *Server) powerOffHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := addressFromVars(r, cec.LogicalAddressTV)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.dev.Standby(addr); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, fmt.Sprintf("Standby command sent to device %d", addr), nil)
}

func (s *Server) getPowerStatusHandler(w http.ResponseWriter, r *http.Request) {
	addr, err := addressFromVars(r, cec.LogicalAddressTV)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, err := s.dev.GetDevicePowerStatus(addr)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, "Power status retrieved", map[string]interface{}{
		"address": addr,
		"status":  status.String(),
	})
}

// Key endpoint

var keyNames = map[string]cec.Keycode{
	"select":  cec.KeycodeSelect,
	"up":      cec.KeycodeUp,
	"down":    cec.KeycodeDown,
	"left":    cec.KeycodeLeft,
	"right":   cec.KeycodeRight,
	"back":    cec.KeycodeExit,
	"home":    cec.KeycodeRootMenu,
	"power":   cec.KeycodePower,
	"volup":   cec.KeycodeVolumeUp,
	"voldown": cec.KeycodeVolumeDown,
	"mute":    cec.KeycodeMute,
	"play":    cec.KeycodePlay,
	"pause":   cec.KeycodePause,
	"stop":    cec.KeycodeStop,
}

func (s *Server) sendKeyHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address int    `json:"address"`
		Key     string `json:"key"`
		Keycode int    `json:"keycode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Address < 0 || req.Address > 15 {
		respondError(w, http.StatusBadRequest, "Invalid logical address (must be 0-15)")
		return
	}

	var keycode cec.Keycode
	if req.Key != "" {
		k, ok := keyNames[strings.ToLower(req.Key)]
		if !ok {
			respondError(w, http.StatusBadRequest, "Unsupported key name")
			return
		}
		keycode = k
	} else {
		if req.Keycode < 0 || req.Keycode > 0xFF {
			respondError(w, http.StatusBadRequest, "Keycode must be in range 0-255")
			return
		}
		keycode = cec.Keycode(req.Keycode)
	}

	if err := s.dev.SendKeypress(cec.LogicalAddress(req.Address), keycode); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, "Key command sent", nil)
}

// Raw command endpoint

type rawCommand struct {
	Initiator   *int   `json:"initiator"`
	Destination int    `json:"destination"`
	Opcode      int    `json:"opcode"`
	Parameters  []byte `json:"parameters"`
}

func (s *Server) rawCommandHandler(w http.ResponseWriter, r *http.Request) {
	var req rawCommand
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	from := s.dev.OwnAddress()
	if req.Initiator != nil {
		if *req.Initiator < 0 || *req.Initiator > 15 {
			respondError(w, http.StatusBadRequest, "Invalid initiator logical address (must be 0-15)")
			return
		}
		from = cec.LogicalAddress(*req.Initiator)
	}
	if req.Destination < 0 || req.Destination > 15 {
		respondError(w, http.StatusBadRequest, "Invalid destination logical address (must be 0-15)")
		return
	}
	if req.Opcode < 0 || req.Opcode > 0xFF {
		respondError(w, http.StatusBadRequest, "Invalid opcode (must be 0-255)")
		return
	}

	msg := cec.NewMessage(from, cec.LogicalAddress(req.Destination),
		cec.Opcode(req.Opcode), req.Parameters...)
	if err := msg.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.dev.TransmitMessage(msg)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(w, "Command sent", map[string]interface{}{
		"tx_status": result.TxStatus.String(),
		"ok":        result.OK(),
	})
}

// Message history

func (s *Server) getMessagesHandler(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, "Messages retrieved", s.history.recent())
}

// Health check

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	_, err := s.dev.Capabilities()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respondSuccess(w, "Service is healthy", map[string]interface{}{
		"version": "1.0.0",
	})
}
