package repository

import "github.com/connect-inmobiliaria/crm-service/internal/domain"

// SeedProperties is the agency's static catalog, used to prime the in-memory
// store in development and as the fallback source for cadastral values.
func SeedProperties() []domain.Property {
	return []domain.Property{
		{
			ID:          "1",
			Title:       "Exclusiva Residencia en Cerro de las Rosas",
			Price:       480000,
			Type:        domain.PropertyTypeHouse,
			Transaction: domain.TransactionSale,
			Latitude:    -31.3685,
			Longitude:   -64.2342,
			Address:     "Av. Rafael Nuñez 3500, Córdoba",
			Description: "Majestuosa propiedad de estilo clásico con amplios jardines, piscina climatizada y detalles de categoría en mármol y madera.",
			Images:      []string{"https://images.unsplash.com/photo-1600585154340-be6161a56a0c?auto=format&fit=crop&q=80&w=1000"},
			Features:    []string{"4 Dormitorios", "Suite con Vestidor", "Quincho Premium", "Piscina"},
			Cadastral: domain.CadastralData{
				ParcelID:      "11-05-021-045",
				AssessedValue: 18500000,
				LandUse:       "Residencial Baja Densidad",
				AreaM2:        850,
			},
		},
		{
			ID:          "2",
			Title:       "Semipiso de Lujo en Nueva Córdoba",
			Price:       1250,
			Type:        domain.PropertyTypeApartment,
			Transaction: domain.TransactionRent,
			Latitude:    -31.4285,
			Longitude:   -64.1857,
			Address:     "Av. Hipólito Yrigoyen 400, Córdoba",
			Description: "Impresionante vista al Parque Sarmiento. Piso alto, terminaciones en porcelanato, calefacción central y seguridad 24hs.",
			Images:      []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&q=80&w=1000"},
			Features:    []string{"2 Dormitorios", "Balcón Terraza", "Amenities VIP", "Cochera Doble"},
			Cadastral: domain.CadastralData{
				ParcelID:      "11-01-088-002",
				AssessedValue: 9500000,
				LandUse:       "Urbano Alta Densidad",
				AreaM2:        110,
			},
		},
		{
			ID:          "3",
			Title:       "Local Comercial en Recta Martinolli",
			Price:       220000,
			Type:        domain.PropertyTypeCommercial,
			Transaction: domain.TransactionSale,
			Latitude:    -31.3412,
			Longitude:   -64.2615,
			Address:     "Recta Martinolli 7800, Argüello",
			Description: "Excelente oportunidad comercial en el corazón de la zona norte. Doble vidriera, planta libre y depósito.",
			Images:      []string{"https://images.unsplash.com/photo-1441986300917-64674bd600d8?auto=format&fit=crop&q=80&w=1000"},
			Features:    []string{"Vidriera 8m", "Planta Libre", "Zona Alto Tránsito"},
			Cadastral: domain.CadastralData{
				ParcelID:      "11-06-115-010",
				AssessedValue: 15000000,
				LandUse:       "Corredor Comercial",
				AreaM2:        150,
			},
		},
	}
}
