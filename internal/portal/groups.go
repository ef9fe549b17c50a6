package portal

// Group strings select one court/jurisdiction bucket of the grouped list view.
var defaultGroups = []string{
	";#Court of Appeal;#Court of Appeal - Civil;#",
	";#Court of Appeal;#Court of Appeal - Commercial;#",
	";#Court of Appeal;#Court of Appeal - Criminal;#",
	";#High Court;#High Court - Civil;#",
	";#High Court;#High Court - Commercial;#",
	";#High Court;#High Court - Criminal;#",
	";#Intermediate Court;#Intermediate Court - Civil;#",
	";#Intermediate Court;#Intermediate Court - Commercial;#",
	";#Intermediate Court;#Intermediate Court - Criminal;#",
	";#Magistrate Court;#Magistrate's Court - Civil;#",
	";#Magistrate Court;#Magistrate's Court - Commercial;#",
	";#Magistrate Court;#Magistrate's Court - Criminal;#",
}

func DefaultGroups() []string {
	out := make([]string, len(defaultGroups))
	copy(out, defaultGroups)
	return out
}

const (
	listID          = "{6FEDFD3E-8A6B-4718-988B-115E090AA7FA}"
	viewID          = "{05976A33-BE1E-45B3-BF62-115006D9E3BA}"
	viewCount       = "262"
	searchPagePath  = "/SJD%20Site%20Pages/Judgment%20Search.aspx"
	listViewPath    = "/_layouts/15/inplview.aspx"
	fullScreenOff   = "false"
	fullScreenToken = "WSS_FullScreenMode"
)

func (c *Client) groupParams(group string) map[string]string {
	return map[string]string{
		"List":            listID,
		"View":            viewID,
		"ViewCount":       viewCount,
		"IsXslView":       "TRUE",
		"IsCSR":           "TRUE",
		"ListViewPageUrl": c.baseURL() + searchPagePath,
		"IsGroupRender":   "TRUE",
		"WebPartID":       viewID,
		"GroupString":     group,
	}
}
