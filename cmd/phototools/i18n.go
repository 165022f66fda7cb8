// Package main provides localization for the phototools CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Spanish translations for CLI messages; the web product
	// ships the same strings across its localized routes.
	l10n.Register("es", l10n.LexiconMap{
		"Compress, resize, convert, crop and enhance images locally": "Comprime, redimensiona, convierte, recorta y mejora imágenes localmente",

		"Reduce image file size":                           "Reduce el tamaño de archivo de la imagen",
		"Resize images by pixels, percentage or preset":    "Redimensiona imágenes por píxeles, porcentaje o preajuste",
		"Convert images to JPG, PNG or WebP":               "Convierte imágenes a JPG, PNG o WebP",
		"Crop a pixel region, optionally as a circular avatar":            "Recorta una región de píxeles, opcionalmente como avatar circular",
		"Adjust brightness, contrast, saturation and sharpness":           "Ajusta brillo, contraste, saturación y nitidez",
		"Output directory for processed images":                           "Directorio de salida para las imágenes procesadas",
		"Bundle all outputs into a single zip archive":                    "Agrupa todos los resultados en un único archivo zip",
		"Quality factor (0-100)":                                          "Factor de calidad (0-100)",
		"Quality factor (0-100, ignored for png)":                         "Factor de calidad (0-100, ignorado para png)",
		"Cap the longer side in pixels (0 = keep size)":                   "Limita el lado mayor en píxeles (0 = mantener tamaño)",
		"Override output format (jpeg, png, webp)":                        "Fuerza el formato de salida (jpeg, png, webp)",
		"Target format (jpeg, png, webp)":                                 "Formato de destino (jpeg, png, webp)",
		"Target width in pixels":                                          "Ancho de destino en píxeles",
		"Target height in pixels":                                         "Alto de destino en píxeles",
		"Compute the missing dimension from the original aspect ratio":    "Calcula la dimensión que falta a partir de la relación de aspecto original",
		"Scale both dimensions by percentage":                             "Escala ambas dimensiones por porcentaje",
		"Social media preset, e.g. \"Instagram Post\"":                    "Preajuste de red social, p. ej. \"Instagram Post\"",
		"Region left offset in pixels":                                    "Desplazamiento izquierdo de la región en píxeles",
		"Region top offset in pixels":                                     "Desplazamiento superior de la región en píxeles",
		"Region width in pixels":                                          "Ancho de la región en píxeles",
		"Region height in pixels (defaults to width)":                     "Alto de la región en píxeles (por defecto igual al ancho)",
		"Aspect ratio preset (free, 1:1, 16:9, 9:16, 4:3, 3:4)":           "Preajuste de relación de aspecto (free, 1:1, 16:9, 9:16, 4:3, 3:4)",
		"Clip to the inscribed circle (always saves PNG)":                 "Recorta al círculo inscrito (siempre guarda PNG)",
		"Brightness adjustment (-100 to 100)":                             "Ajuste de brillo (-100 a 100)",
		"Contrast adjustment (-100 to 100)":                               "Ajuste de contraste (-100 a 100)",
		"Saturation adjustment (-100 to 100)":                             "Ajuste de saturación (-100 a 100)",
		"Sharpen amount (0-100)":                                          "Cantidad de nitidez (0-100)",
		"Quick filter (none, bw, sepia, vivid)":                           "Filtro rápido (none, bw, sepia, vivid)",
		"Apply the one-click auto enhancement":                            "Aplica la mejora automática de un clic",
		"Output format (jpeg or png)":                                     "Formato de salida (jpeg o png)",

		"Processing %d/%d...":        "Procesando %d/%d...",
		"Archive saved to %s":        "Archivo guardado en %s",
		"Saved %s (%d -> %d bytes)":  "Guardado %s (%d -> %d bytes)",
		"Failed %s: %s":              "Falló %s: %s",
		"Error: %s":                  "Error: %s",
	})
}
