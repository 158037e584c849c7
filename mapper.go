package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

// gelfVersion is the protocol version stamped on every outgoing message.
const gelfVersion = "1.0"

// facilityNames maps syslog facility codes to their canonical names.
// Codes without an entry report as "unknown".
var facilityNames = map[int64]string{
	0:  "kern",
	1:  "user",
	2:  "mail",
	3:  "daemon",
	4:  "auth",
	5:  "syslog",
	6:  "lpr",
	7:  "news",
	8:  "uucp",
	9:  "cron",
	10: "authpriv",
	11: "ftp",
	12: "ntp",
	13: "audit",
	14: "alert",
	15: "clock",
	16: "local0",
	17: "local1",
	18: "local2",
	19: "local3",
	20: "local4",
	21: "local5",
	22: "local6",
	23: "local7",
}

func facilityName(code int64) string {
	if name, ok := facilityNames[code]; ok {
		return name
	}
	return "unknown"
}

// mapRecord translates one parsed journal record into a GELF message.
// Recognized journal fields become GELF semantic fields, private fields
// (".") and the cursor are dropped, and everything else passes through
// under an underscore prefix. A numeric field that does not parse fails
// the whole record.
func mapRecord(v *fastjson.Value) (map[string]any, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("record is not an object: %v", err)
	}

	msg := map[string]any{"version": gelfVersion}
	var fieldErr error

	obj.Visit(func(k []byte, val *fastjson.Value) {
		if fieldErr != nil {
			return
		}
		key := string(k)
		switch {
		case strings.HasPrefix(key, "."):
			// private journal namespace, never forwarded
		case key == "__CURSOR":
			// journal position bookkeeping, meaningless downstream
		case key == "__REALTIME_TIMESTAMP":
			us, err := integerField(key, val)
			if err != nil {
				fieldErr = err
				return
			}
			msg["timestamp"] = float64(us) / 1e6
		case key == "PRIORITY":
			level, err := integerField(key, val)
			if err != nil {
				fieldErr = err
				return
			}
			msg["level"] = level
		case key == "SYSLOG_FACILITY":
			facility, err := integerField(key, val)
			if err != nil {
				fieldErr = err
				return
			}
			msg["facility"] = facilityName(facility)
		case key == "_HOSTNAME":
			msg["host"] = goValue(val)
		case key == "MESSAGE":
			msg["short_message"] = goValue(val)
		default:
			msg["_"+key] = goValue(val)
		}
	})

	if fieldErr != nil {
		return nil, fieldErr
	}
	return msg, nil
}

// integerField reads a numeric journal field, which journalctl emits
// either as a JSON number or as a quoted decimal string.
func integerField(key string, v *fastjson.Value) (int64, error) {
	switch v.Type() {
	case fastjson.TypeNumber:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s: %v", key, err)
		}
		return n, nil
	case fastjson.TypeString:
		n, err := strconv.ParseInt(string(v.GetStringBytes()), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %v", key, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%s: unexpected %s value", key, v.Type())
}
