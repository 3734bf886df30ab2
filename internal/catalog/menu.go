package catalog

// defaultMenu is the built-in Dapur Azka Qanita menu, served until the
// back-office writes its own list.
func defaultMenu() []Product {
	return []Product{
		{ID: "ayam-geprek-original", Name: "Ayam Geprek Original", Description: "Ayam geprek dengan sambal pedas level 1-5.", Price: 15000, Image: "Ayam Geprek Original", Category: "Makanan Utama"},
		{ID: "ayam-geprek-keju", Name: "Ayam Geprek Keju", Description: "Ayam geprek dengan topping keju mozzarella.", Price: 20000, Image: "Ayam Geprek Keju", Category: "Makanan Utama"},
		{ID: "mie-ayam-original", Name: "Mie Ayam Original", Description: "Mie ayam dengan topping ayam cincang dan pangsit.", Price: 12000, Image: "Mie Ayam Original", Category: "Makanan Utama"},
		{ID: "mie-ayam-bakso", Name: "Mie Ayam Bakso", Description: "Mie ayam dengan tambahan bakso sapi.", Price: 15000, Image: "Mie Ayam Bakso", Category: "Makanan Utama"},
		{ID: "bakso-goreng", Name: "Bakso Goreng (5 pcs)", Description: "Bakso goreng renyah dengan isian daging sapi.", Price: 10000, Image: "Bakso Goreng (5 pcs)", Category: "Snack"},
		{ID: "bakso-goreng-pedas", Name: "Bakso Goreng Pedas (5 pcs)", Description: "Bakso goreng dengan bumbu pedas.", Price: 12000, Image: "Bakso Goreng Pedas (5 pcs)", Category: "Snack"},
		{ID: "es-rencengan-original", Name: "Es Rencengan Original", Description: "Minuman segar dengan campuran buah-buahan.", Price: 8000, Image: "Es Rencengan Original", Category: "Minuman"},
		{ID: "es-rencengan-spesial", Name: "Es Rencengan Spesial", Description: "Es rencengan dengan tambahan jelly dan boba.", Price: 10000, Image: "Es Rencengan Spesial", Category: "Minuman"},
		{ID: "nasi-goreng-kampung", Name: "Nasi Goreng Kampung", Description: "Nasi goreng klasik dengan bumbu khas.", Price: 13000, Image: "Nasi Goreng Kampung", Category: "Makanan Utama"},
		{ID: "soto-ayam", Name: "Soto Ayam Lamongan", Description: "Soto ayam dengan kuah kuning gurih.", Price: 14000, Image: "Soto Ayam Lamongan", Category: "Makanan Utama"},
		{ID: "pisang-cokelat", Name: "Pisang Cokelat Keju", Description: "Pisang goreng dengan topping cokelat dan keju.", Price: 9000, Image: "Pisang Cokelat Keju", Category: "Snack"},
		{ID: "es-teh-manis", Name: "Es Teh Manis Jumbo", Description: "Es teh manis ukuran besar.", Price: 5000, Image: "Es Teh Manis Jumbo", Category: "Minuman"},
	}
}
