package patterns

// defaults holds the built-in exchange patterns used whenever no patterns
// file is configured, a file fails to parse, or a key is missing from it.
var defaults = Document{
	S0: map[string][]string{
		"cq_simple":  {`CQDE{MY_CALL}K`},
		"cq_parks":   {`CQPOTADE{MY_CALL}K`},
		"cq_summits": {`CQSOTADE{MY_CALL}K`},
	},
	S2: map[string][]string{
		// RST tolerance (spec.md §8 S4: "57N"/"519" accepted, "6NN" rejected)
		// is unconditional: the leading "5" is fixed, the other two
		// characters may be any letter/digit. The literal "599" rendition
		// of that report is additionally gated by allow_599: the strict
		// variant excludes it (both trailing characters being "9"), the
		// tolerant variant allows it.
		"report_require_call":     {`{CALLER}5(?:[A-Z0-8][A-Z0-9]|9[A-Z0-8])5(?:[A-Z0-8][A-Z0-9]|9[A-Z0-8])`},
		"report_require_call_599": {`{CALLER}5[A-Z0-9]{2}5[A-Z0-9]{2}`},
		"report_no_call":          {`5(?:[A-Z0-8][A-Z0-9]|9[A-Z0-8])5(?:[A-Z0-8][A-Z0-9]|9[A-Z0-8])`},
		"report_no_call_599":      {`5[A-Z0-9]{2}5[A-Z0-9]{2}`},
		"p2p_ack":                 {`.*P2P.*`},
	},
	S5: map[string][]string{
		"final_plain":      {`73EE?`},
		"final_tu":         {`TU73EE?`},
		"final_prosign":    {`73{PROSIGN}`},
		"final_tu_prosign": {`TU73{PROSIGN}`},
		// P2P's final exchange echoes back the caller's own callsign, the
		// operator's callsign, and the operator's park reference doubled,
		// not just the closer: "{PROSIGN} EA1AFV EA3IPX MY REF EA-1234
		// EA-1234 [TU] 73 {PROSIGN}".
		"p2p_final_plain": {`{PROSIGN}{CALLER}{MY_CALL}MYREF{MY_PARK_REF}{MY_PARK_REF}73{PROSIGN}`},
		"p2p_final_tu":    {`{PROSIGN}{CALLER}{MY_CALL}MYREF{MY_PARK_REF}{MY_PARK_REF}TU73{PROSIGN}`},
	},
	TX: map[string]string{
		"calling":                      "{DISPLAY_CALL} {DISPLAY_CALL}",
		"rr":                           "RR",
		"query_echo":                   "{CALLER} {CALLER}",
		"report_reply":                 "{TX_PROSIGN} UR 5NN 5NN TU 73 {TX_PROSIGN}",
		"p2p_station_reply_with_tu":    "{TX_PROSIGN} {CALLER} {CALLER} MY REF {MY_PARK} {MY_PARK} TU 73 {TX_PROSIGN}",
		"p2p_station_reply_without_tu": "{TX_PROSIGN} {CALLER} {CALLER} MY REF {MY_PARK} {MY_PARK} 73 {TX_PROSIGN}",
		"qso_complete":                 "EE",
		"call_doubled":                 "{CALLER} {CALLER}",
		"ref_doubled":                  "{MY_PARK} {MY_PARK}",
	},
}
