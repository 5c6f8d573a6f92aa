package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file (PNG, JPEG, GIF, or WebP)",
	}
}

func removeBackgroundProperties() map[string]interface{} {
	return map[string]interface{}{
		"targetColor": map[string]interface{}{
			"type":        "string",
			"description": "Background color as #rrggbb, or \"auto\" to use the top-left pixel. Invalid values fall back to white.",
			"default":     "#ffffff",
		},
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "Match radius as 0-100 percent of the largest possible color distance",
			"minimum":     0,
			"maximum":     100,
		},
		"feather": map[string]interface{}{
			"type":        "number",
			"description": "Soft edge width beyond the tolerance, 0-100 percent. 0 gives a hard edge.",
			"minimum":     0,
			"maximum":     100,
		},
	}
}

func cropProperties() map[string]interface{} {
	return map[string]interface{}{
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"auto", "manual"},
			"description": "auto trims to the bounding box of non-transparent pixels; manual removes fixed amounts from each edge",
			"default":     "auto",
		},
		"manual": map[string]interface{}{
			"type":        "object",
			"description": "Pixels to remove from each edge (manual mode)",
			"properties": map[string]interface{}{
				"top":    map[string]interface{}{"type": "integer"},
				"right":  map[string]interface{}{"type": "integer"},
				"bottom": map[string]interface{}{"type": "integer"},
				"left":   map[string]interface{}{"type": "integer"},
			},
		},
		"padding": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels to keep around the detected content (auto mode)",
			"minimum":     0,
		},
	}
}

func splitProperties() map[string]interface{} {
	return map[string]interface{}{
		"rows": map[string]interface{}{
			"type":        "integer",
			"description": "Number of rows in the grid",
			"minimum":     1,
		},
		"cols": map[string]interface{}{
			"type":        "integer",
			"description": "Number of columns in the grid",
			"minimum":     1,
		},
	}
}

func resizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Target width in pixels. With keepAspectRatio, 0 derives it from height.",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Target height in pixels. With keepAspectRatio, 0 derives it from width.",
		},
		"keepAspectRatio": map[string]interface{}{
			"type":        "boolean",
			"description": "Fill a zero width or height from the source aspect ratio",
		},
		"filter": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"lanczos", "catmullrom", "linear", "bicubic"},
			"description": "Resampling filter. Defaults to the server's configured filter.",
		},
	}
}

func withPath(props map[string]interface{}) map[string]interface{} {
	props["path"] = pathProperty()
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, file size, and whether it has transparent pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(map[string]interface{}{}),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel as hex, RGB, RGBA, and HSL. Use it to pick a background color for removal.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				}),
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "List the most common colors of the visible pixels, useful for choosing a background key color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
				}),
				"required": []string{"path"},
			},
		},

		// Single-image transforms
		{
			Name:        "image_remove_background",
			Description: "Make pixels close to a key color transparent and return the result as base64 PNG. Set ai to use the configured AI background removal service instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(func() map[string]interface{} {
					p := removeBackgroundProperties()
					p["ai"] = map[string]interface{}{
						"type":        "boolean",
						"description": "Use the AI background removal service; color settings are ignored",
					}
					return p
				}()),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_trim",
			Description: "Crop an image to its visible content or by fixed edge amounts and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(cropProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_split",
			Description: "Cut an image into a rows x cols grid of equal cells, returned in row-major order as base64 PNGs. Leftover pixels at the right and bottom edges are dropped.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(splitProperties()),
				"required":   []string{"path", "rows", "cols"},
			},
		},
		{
			Name:        "image_split_preview",
			Description: "Draw the cell boundaries image_split would use over the image, dimming the pixels it would drop.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(func() map[string]interface{} {
					p := splitProperties()
					p["color"] = map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as #rrggbb. Default #ff0000",
						"default":     "#ff0000",
					}
					return p
				}()),
				"required": []string{"path", "rows", "cols"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Resize an image and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(resizeProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_erase",
			Description: "Make a circular area transparent, like an eraser brush. The radius is capped unless the eraser size is unlocked.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Center X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Center Y coordinate",
					},
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Brush radius in pixels. Default 5",
						"default":     5,
					},
				}),
				"required": []string{"path", "x", "y"},
			},
		},

		// Batch
		{
			Name:        "image_batch",
			Description: "Apply one operation to many images and write the PNG results to a directory or a .zip file. A failing image does not stop the batch; the report lists each image's outcome by index.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"remove-background", "remove-background-ai", "crop", "split", "resize"},
						"description": "Operation applied to every image",
					},
					"settings": map[string]interface{}{
						"type":        "object",
						"description": "Operation settings, with the same fields as the single-image tools (targetColor/tolerance/feather, mode/manual/padding, rows/cols, width/height/keepAspectRatio/filter)",
					},
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths of the input images, processed in order",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Output directory, or a path ending in .zip to write a single archive",
					},
				},
				"required": []string{"operation", "paths", "output"},
			},
		},
	}
}
