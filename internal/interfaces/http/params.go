package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pathID devuelve el parámetro :id decodificado. Fiber entrega los parámetros tal como
// llegan en la ruta; un id con espacios o acentos viene como STORE%20NORTH.
// Un "/" dentro del id debe enviarse como %2F.
func pathID(c *fiber.Ctx) (string, bool) {
	id, err := url.PathUnescape(c.Params("id"))
	return id, err == nil
}

func invalidPathID(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_ID", "identificador mal codificado en la ruta")
}

func movementID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}
