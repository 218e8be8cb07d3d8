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

const bookingsHeader = "id,hotel_id,room_number,client_name,passport,check_in,check_out,status,total_price"

// BookingStore владеет коллекцией бронирований и её файлом. Формат файла —
// CSV без экранирования: поле с запятой внутри ломает разбор строки, и
// такая строка при загрузке просто пропускается.
type BookingStore struct {
	path     string
	bookings []models.Booking
	nextID   int
	logger   *zerolog.Logger
}

func NewBookingStore(path string, logger *zerolog.Logger) *BookingStore {
	return &BookingStore{
		path:   path,
		nextID: 1,
		logger: logger,
	}
}

// AllocateID выдаёт очередной идентификатор. Счётчик продвигается сразу,
// даже если бронирование с этим идентификатором потом будет отклонено.
func (s *BookingStore) AllocateID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *BookingStore) NextID() int {
	return s.nextID
}

func (s *BookingStore) Append(b models.Booking) {
	s.bookings = append(s.bookings, b)
}

// Get возвращает копию бронирования.
func (s *BookingStore) Get(id int) (models.Booking, error) {
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, fmt.Errorf("booking %d: %w", id, ErrBookingNotFound)
}

// Put заменяет запись с тем же идентификатором.
func (s *BookingStore) Put(b models.Booking) error {
	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i] = b
			return nil
		}
	}
	return fmt.Errorf("booking %d: %w", b.ID, ErrBookingNotFound)
}

// All возвращает копию всей коллекции в порядке вставки.
func (s *BookingStore) All() []models.Booking {
	return append([]models.Booking(nil), s.bookings...)
}

func (s *BookingStore) Count() int {
	return len(s.bookings)
}

func (s *BookingStore) ByClient(clientName string) []models.Booking {
	return s.filter(func(b models.Booking) bool { return b.ClientName == clientName })
}

func (s *BookingStore) ByPassport(passport string) []models.Booking {
	return s.filter(func(b models.Booking) bool { return b.Passport == passport })
}

func (s *BookingStore) ByHotel(hotelID int) []models.Booking {
	return s.filter(func(b models.Booking) bool { return b.HotelID == hotelID })
}

func (s *BookingStore) ByStatus(status string) []models.Booking {
	return s.filter(func(b models.Booking) bool { return b.Status == status })
}

func (s *BookingStore) Active() []models.Booking {
	return s.ByStatus(models.StatusActive)
}

// ByCheckInRange отбирает бронирования с датой заезда внутри [start, end]
// включительно. Сравнение строковое, как везде в хранилище.
func (s *BookingStore) ByCheckInRange(start, end string) []models.Booking {
	return s.filter(func(b models.Booking) bool {
		return b.CheckIn >= start && b.CheckIn <= end
	})
}

func (s *BookingStore) SortedByCheckIn() []models.Booking {
	sorted := s.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckIn < sorted[j].CheckIn
	})
	return sorted
}

func (s *BookingStore) SortedByPrice() []models.Booking {
	sorted := s.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPrice < sorted[j].TotalPrice
	})
	return sorted
}

// Revenue суммирует стоимость только завершённых бронирований.
func (s *BookingStore) Revenue() float64 {
	var total float64
	for _, b := range s.bookings {
		if b.Status == models.StatusCompleted {
			total += b.TotalPrice
		}
	}
	return total
}

func (s *BookingStore) filter(keep func(models.Booking) bool) []models.Booking {
	var result []models.Booking
	for _, b := range s.bookings {
		if keep(b) {
			result = append(result, b)
		}
	}
	return result
}

// Save переписывает файл целиком: заголовок и по строке на бронирование.
func (s *BookingStore) Save() error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("open bookings file for writing: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, bookingsHeader)
	for _, b := range s.bookings {
		fmt.Fprintf(w, "%d,%d,%d,%s,%s,%s,%s,%s,%s\n",
			b.ID, b.HotelID, b.RoomNumber, b.ClientName, b.Passport,
			b.CheckIn, b.CheckOut, b.Status, formatPrice(b.TotalPrice))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	return nil
}

// Load очищает коллекцию и заполняет её из файла. Заголовок и строки,
// которые не удаётся разобрать, пропускаются. Счётчик идентификаторов
// продвигается за максимальный встреченный id.
func (s *BookingStore) Load() error {
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open bookings file: %w", err)
	}
	defer file.Close()

	s.bookings = s.bookings[:0]

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

		b, err := parseBookingRow(line)
		if err != nil {
			s.logger.Warn().Err(err).Str("line", line).Msg("skipping malformed booking row")
			continue
		}

		s.bookings = append(s.bookings, b)
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read bookings file: %w", err)
	}

	s.logger.Info().Int("count", len(s.bookings)).Int("next_id", s.nextID).Msg("bookings loaded")
	return nil
}

func parseBookingRow(line string) (models.Booking, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 9 {
		return models.Booking{}, fmt.Errorf("expected 9 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return models.Booking{}, fmt.Errorf("parse id: %w", err)
	}
	hotelID, err := strconv.Atoi(fields[1])
	if err != nil {
		return models.Booking{}, fmt.Errorf("parse hotel id: %w", err)
	}
	roomNumber, err := strconv.Atoi(fields[2])
	if err != nil {
		return models.Booking{}, fmt.Errorf("parse room number: %w", err)
	}
	totalPrice, err := strconv.ParseFloat(fields[8], 64)
	if err != nil {
		return models.Booking{}, fmt.Errorf("parse total price: %w", err)
	}

	b := models.NewBooking(id, hotelID, roomNumber, fields[3], fields[4], fields[5], fields[6])
	b.Status = fields[7]
	b.TotalPrice = totalPrice
	return b, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
