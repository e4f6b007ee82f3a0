package handlers

import (
	"myfabric/domain"
)

func toServiceInfo(e domain.ServiceEntry) ServiceInfo {
	info := ServiceInfo{
		ServiceName: e.ServiceName,
		Description: e.Description,
		ServiceType: e.ServiceType,
		Version:     e.Version,
	}
	if !e.RegisteredOn.IsZero() {
		registeredOn := e.RegisteredOn
		info.RegisteredOn = &registeredOn
	}
	return info
}

// toServicesResponse converts domain service entries to API response.
func toServicesResponse(entries []domain.ServiceEntry) ServicesResponse {
	out := make([]ServiceInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, toServiceInfo(e))
	}
	return ServicesResponse{Services: out}
}

// toPresenceResponse converts presence records to API response.
func toPresenceResponse(records []domain.PresenceRecord) PresenceResponse {
	out := make([]PresenceInfo, 0, len(records))
	for _, r := range records {
		out = append(out, PresenceInfo{
			InstanceId:    string(r.InstanceID),
			ServiceName:   r.ServiceName,
			Host:          r.Host,
			Port:          r.Port,
			ProcessId:     r.ProcessID,
			UpdatedOn:     r.UpdatedOn,
			UptimeSeconds: r.UptimeSeconds,
			Load1:         r.Load1,
			MemoryRss:     r.MemoryRSS,
		})
	}
	return PresenceResponse{Instances: out}
}

func toSendMessageResponse(r domain.SendResult) SendMessageResponse {
	return SendMessageResponse{
		Mid:       r.MID,
		Channel:   r.Channel,
		Direct:    r.Direct,
		Receivers: r.Receivers,
	}
}
