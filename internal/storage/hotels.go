package storage

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

const hotelsHeader = "id,type,name,city,description,stars,services,room_number,room_class,capacity,price"

// HotelStore владеет каталогом отелей. В файле отель занимает по строке на
// каждый номер, поля самого отеля в этих строках повторяются. Отель без
// номеров при сохранении не оставляет ни одной строки и после перезагрузки
// исчезает, формат этого не выражает.
type HotelStore struct {
	path   string
	hotels []*models.Hotel
	nextID int
	logger *zerolog.Logger
}

func NewHotelStore(path string, logger *zerolog.Logger) *HotelStore {
	return &HotelStore{
		path:   path,
		nextID: 1,
		logger: logger,
	}
}

// Add присваивает отелю очередной идентификатор и сохраняет каталог.
func (s *HotelStore) Add(h *models.Hotel) error {
	if h == nil {
		return fmt.Errorf("nil hotel")
	}
	h.ID = s.nextID
	if err := h.Validate(); err != nil {
		return err
	}
	s.nextID++
	s.hotels = append(s.hotels, h)
	return s.Save()
}

// Remove удаляет отель вместе с его номерами и сохраняет каталог.
// Бронирования, ссылающиеся на отель, не трогаются и остаются висячими.
func (s *HotelStore) Remove(id int) error {
	for i, h := range s.hotels {
		if h.ID == id {
			s.hotels = append(s.hotels[:i], s.hotels[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("hotel %d: %w", id, ErrHotelNotFound)
}

// FindByID возвращает разделяемый указатель на отель каталога.
func (s *HotelStore) FindByID(id int) (*models.Hotel, bool) {
	for _, h := range s.hotels {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

func (s *HotelStore) All() []*models.Hotel {
	return append([]*models.Hotel(nil), s.hotels...)
}

func (s *HotelStore) Count() int {
	return len(s.hotels)
}

func (s *HotelStore) ByCity(city string) []*models.Hotel {
	return s.filter(func(h *models.Hotel) bool { return h.City == city })
}

func (s *HotelStore) ByType(hotelType string) []*models.Hotel {
	return s.filter(func(h *models.Hotel) bool { return h.Type == hotelType })
}

func (s *HotelStore) ByStars(stars int) []*models.Hotel {
	return s.filter(func(h *models.Hotel) bool { return h.Stars == stars })
}

// FindAvailableRooms ищет отели, в которых есть свободный номер,
// удовлетворяющий всем заданным условиям. Пустой город и пустой класс
// означают «любой».
func (s *HotelStore) FindAvailableRooms(city, roomClass string, minCapacity int, maxPrice float64) []*models.Hotel {
	return s.filter(func(h *models.Hotel) bool {
		if city != "" && h.City != city {
			return false
		}
		for _, room := range h.Rooms {
			if !room.Available {
				continue
			}
			if roomClass != "" && room.Class != roomClass {
				continue
			}
			if room.Capacity < minCapacity {
				continue
			}
			if room.PricePerNight > maxPrice {
				continue
			}
			return true
		}
		return false
	})
}

func (s *HotelStore) SortedByAveragePrice() []*models.Hotel {
	sorted := s.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AveragePrice() < sorted[j].AveragePrice()
	})
	return sorted
}

func (s *HotelStore) SortedByName() []*models.Hotel {
	sorted := s.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func (s *HotelStore) filter(keep func(*models.Hotel) bool) []*models.Hotel {
	var result []*models.Hotel
	for _, h := range s.hotels {
		if keep(h) {
			result = append(result, h)
		}
	}
	return result
}

func (s *HotelStore) Save() error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("open hotels file for writing: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, hotelsHeader)
	for _, h := range s.hotels {
		services := encodeServices(h)
		for _, room := range h.Rooms {
			fmt.Fprintf(w, "%d,%s,%s,%s,%s,%d,%s,%d,%s,%d,%s\n",
				h.ID, h.Type, h.Name, h.City, h.Description, h.Stars, services,
				room.Number, room.Class, room.Capacity, formatPrice(room.PricePerNight))
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write hotels file: %w", err)
	}
	return nil
}

func (s *HotelStore) Load() error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open hotels file: %w", err)
	}
	defer file.Close()

	s.hotels = s.hotels[:0]

	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}

		if err := s.applyHotelRow(line); err != nil {
			s.logger.Warn().Err(err).Str("line", line).Msg("skipping malformed hotel row")
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read hotels file: %w", err)
	}

	s.logger.Info().Int("count", len(s.hotels)).Int("next_id", s.nextID).Msg("hotels loaded")
	return nil
}

// applyHotelRow добавляет номер к уже встреченному отелю либо создаёт
// новый отель по первой его строке.
func (s *HotelStore) applyHotelRow(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 11 {
		return fmt.Errorf("expected 11 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("parse hotel id: %w", err)
	}
	stars, err := strconv.Atoi(fields[5])
	if err != nil {
		return fmt.Errorf("parse stars: %w", err)
	}
	roomNumber, err := strconv.Atoi(fields[7])
	if err != nil {
		return fmt.Errorf("parse room number: %w", err)
	}
	capacity, err := strconv.Atoi(fields[9])
	if err != nil {
		return fmt.Errorf("parse capacity: %w", err)
	}
	price, err := strconv.ParseFloat(fields[10], 64)
	if err != nil {
		return fmt.Errorf("parse price: %w", err)
	}

	room := models.NewRoom(roomNumber, fields[8], capacity, price)

	if existing, ok := s.FindByID(id); ok {
		if err := existing.AddRoom(room); err != nil {
			return fmt.Errorf("add room %d: %w", roomNumber, err)
		}
		return nil
	}

	var hotel *models.Hotel
	if fields[1] == models.HotelTypePremium {
		hotel = models.NewPremiumHotel(id, fields[2], fields[3], fields[4], stars)
		for _, service := range strings.Split(fields[6], ";") {
			hotel.AddService(strings.TrimSpace(service))
		}
	} else {
		hotel = models.NewBudgetHotel(id, fields[2], fields[3], fields[4], stars)
		hotel.FreeWifi = strings.Contains(fields[6], "WiFi")
		hotel.FreeParking = strings.Contains(fields[6], "Parking")
		hotel.Breakfast = strings.Contains(fields[6], "Breakfast")
	}

	if err := hotel.AddRoom(room); err != nil {
		return fmt.Errorf("add room %d: %w", roomNumber, err)
	}
	s.hotels = append(s.hotels, hotel)

	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

// encodeServices собирает колонку services: список через ';' у Premium,
// набор маркеров бесплатных услуг у Budget. Маркеры Budget пишутся с
// замыкающей ';', загрузка опирается на поиск подстроки, а не на разбор.
func encodeServices(h *models.Hotel) string {
	if h.Type == models.HotelTypePremium {
		return strings.Join(h.Services, ";")
	}
	var sb strings.Builder
	for _, service := range h.FreeServices() {
		sb.WriteString(service)
		sb.WriteString(";")
	}
	return sb.String()
}
